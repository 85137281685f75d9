package names

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathNames = "/api/names"
)

func RegisterNamesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathNames, middleWares...)
	g.GET("/tasks", handleQueryTaskFormNames)
	g.GET("/time", handleQueryTimeRecordFormNames)
}

func handleQueryTaskFormNames(c *gin.Context) {
	result, err := QueryTaskFormNamesFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleQueryTimeRecordFormNames(c *gin.Context) {
	result, err := QueryTimeRecordFormNamesFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
