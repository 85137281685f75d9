package timer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathTimer = "/api/timer"
)

func RegisterTimerRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTimer, middleWares...)
	g.GET("", handleStatus)
	g.POST("/start", handleStart)
	g.POST("/stop", handleStop)
}

func handleStatus(c *gin.Context) {
	e, err := StatusFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	if e == nil {
		c.JSON(http.StatusOK, gin.H{"running": false})
		return
	}
	c.JSON(http.StatusOK, e)
}

func handleStart(c *gin.Context) {
	req := StartRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		panic(err)
	}
	e, err := StartFunc(c.Request.Context(), &req)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, e)
}

func handleStop(c *gin.Context) {
	s, err := StopFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, s)
}
