package timerecord

import (
	"net/http"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/misc"

	"github.com/gin-gonic/gin"
)

var (
	PathTime = "/api/time"
)

func RegisterTimeRecordsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTime, middleWares...)
	g.GET("/all", handleQueryTimeRecords)
	g.GET("", handleDetailTimeRecord)
	g.POST("/create", handleCreateTimeRecord)
	g.PUT("/update", handleUpdateTimeRecord)
	g.DELETE("/delete", handleDeleteTimeRecord)
}

func handleQueryTimeRecords(c *gin.Context) {
	result, err := QueryTimeRecordsFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleDetailTimeRecord(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "timeRecordId", bizerror.NewErrTimeRecordNotFound)
	if err != nil {
		panic(err)
	}
	result, err := DetailTimeRecordFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCreateTimeRecord(c *gin.Context) {
	payload := domain.TimeRecordCreating{}
	if _, err := misc.BindingJSON(c, &payload); err != nil {
		panic(err)
	}
	r, err := CreateTimeRecordFunc(c.Request.Context(), &payload)
	if err != nil {
		panic(err)
	}
	misc.Created(c, PathTime, "timeRecordId", r.TimeRecordID, r)
}

func handleUpdateTimeRecord(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "timeRecordId", bizerror.NewErrTimeRecordNotFound)
	if err != nil {
		panic(err)
	}
	payload := domain.TimeRecordUpdating{}
	if _, err := misc.BindingJSON(c, &payload); err != nil {
		panic(err)
	}
	if err := UpdateTimeRecordFunc(c.Request.Context(), id, &payload); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDeleteTimeRecord(c *gin.Context) {
	id, err := misc.BindingQueryID(c, "timeRecordId", bizerror.NewErrTimeRecordNotFound)
	if err != nil {
		panic(err)
	}
	if err := DeleteTimeRecordFunc(c.Request.Context(), id); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
