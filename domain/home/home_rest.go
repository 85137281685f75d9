package home

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathHome = "/api/home"
)

func RegisterHomeRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	r.GET(PathHome, append(middleWares, handleQueryHome)...)
}

func handleQueryHome(c *gin.Context) {
	result, err := QueryHomeFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
