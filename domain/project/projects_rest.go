package project

import (
	"net/http"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/misc"

	"github.com/gin-gonic/gin"
)

var (
	PathProjects = "/api/projects"
)

func RegisterProjectsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects, middleWares...)
	g.GET("/all", handleQueryProjects)
	g.GET("", handleDetailProject)
	g.POST("/create", handleCreateProject)
	g.PUT("/update", handleUpdateProject)
	g.DELETE("/delete", handleDeleteProject)
}

func handleQueryProjects(c *gin.Context) {
	result, err := QueryProjectsFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleDetailProject(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "projectId", bizerror.NewErrProjectNotFound)
	if err != nil {
		panic(err)
	}
	result, err := DetailProjectFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCreateProject(c *gin.Context) {
	payload := domain.ProjectCreating{}
	if _, err := misc.BindingJSON(c, &payload); err != nil {
		panic(err)
	}
	p, err := CreateProjectFunc(c.Request.Context(), &payload)
	if err != nil {
		panic(err)
	}
	misc.Created(c, PathProjects, "projectId", p.ProjectID, p)
}

func handleUpdateProject(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "projectId", bizerror.NewErrProjectNotFound)
	if err != nil {
		panic(err)
	}
	payload := domain.ProjectUpdating{}
	if _, err := misc.BindingJSON(c, &payload); err != nil {
		panic(err)
	}
	if err := UpdateProjectFunc(c.Request.Context(), id, &payload); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDeleteProject(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "projectId", bizerror.NewErrProjectNotFound)
	if err != nil {
		panic(err)
	}
	if err := DeleteProjectFunc(c.Request.Context(), id); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
