package task

import (
	"net/http"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/misc"

	"github.com/gin-gonic/gin"
)

var (
	PathTasks = "/api/tasks"
)

func RegisterTasksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTasks, middleWares...)
	g.GET("/all", handleQueryTasks)
	g.GET("", handleDetailTask)
	g.POST("/create", handleCreateTask)
	g.PUT("/update", handleUpdateTask)
	g.DELETE("/delete", handleDeleteTask)
}

func handleQueryTasks(c *gin.Context) {
	result, err := QueryTasksFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleDetailTask(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "taskId", bizerror.NewErrTaskNotFound)
	if err != nil {
		panic(err)
	}
	result, err := DetailTaskFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCreateTask(c *gin.Context) {
	payload := domain.TaskCreating{}
	if _, err := misc.BindingJSON(c, &payload); err != nil {
		panic(err)
	}
	t, err := CreateTaskFunc(c.Request.Context(), &payload)
	if err != nil {
		panic(err)
	}
	misc.Created(c, PathTasks, "taskId", t.TaskID, t)
}

func handleUpdateTask(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "taskId", bizerror.NewErrTaskNotFound)
	if err != nil {
		panic(err)
	}
	payload := domain.TaskUpdating{}
	keys, err := misc.BindingJSON(c, &payload)
	if err != nil {
		panic(err)
	}
	payload.DetachParent = misc.IsExplicitNull(keys, "parentTaskId")
	if err := UpdateTaskFunc(c.Request.Context(), id, &payload); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDeleteTask(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "taskId", bizerror.NewErrTaskNotFound)
	if err != nil {
		panic(err)
	}
	if err := DeleteTaskFunc(c.Request.Context(), id); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
