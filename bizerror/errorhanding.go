package bizerror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// StatusClientClosedRequest is answered when the caller aborted before the operation finished.
const StatusClientClosedRequest = 499

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = errors.New(fmt.Sprintf("%s", ret))
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	var bizErr BizError
	if errors.As(genericErr, &bizErr) {
		respond := bizErr.Respond()
		if respond.Status >= http.StatusInternalServerError {
			logrus.WithField("path", c.Request.URL.Path).Error(genericErr)
		} else {
			logrus.WithField("path", c.Request.URL.Path).Info(genericErr)
		}
		c.AbortWithStatusJSON(respond.Status, &respond.Body)
		return
	}

	// binding failures that were not wrapped by the handler
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(genericErr, io.EOF) || errors.As(genericErr, &syntaxErr) || errors.As(genericErr, &typeErr) {
		HandleError(c, &ErrBadParam{Cause: genericErr})
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(genericErr, &validationErrs) {
		HandleError(c, NewErrValidation(FromValidationErrors(validationErrs)))
		return
	}

	if errors.Is(genericErr, ErrTimerRunning) || errors.Is(genericErr, ErrTimerNotRunning) {
		HandleError(c, NewErrValidation(FieldErrors{{Name: "Timer", Error: genericErr.Error()}}))
		return
	}

	if errors.Is(genericErr, context.Canceled) {
		logrus.WithField("path", c.Request.URL.Path).Warn("request cancelled by client")
		c.AbortWithStatus(StatusClientClosedRequest)
		return
	}

	// unexpected: no structured body
	logrus.WithField("path", c.Request.URL.Path).Error(genericErr)
	c.AbortWithStatus(http.StatusInternalServerError)
}

// FromValidationErrors converts struct tag failures into named field errors,
// spelling identifier fields the way clients expect ("TaskId", not "TaskID").
func FromValidationErrors(errs validator.ValidationErrors) FieldErrors {
	result := FieldErrors{}
	for _, fe := range errs {
		name := fe.StructField()
		if strings.HasSuffix(name, "ID") {
			name = strings.TrimSuffix(name, "ID") + "Id"
		}
		result.Add(name, fmt.Sprintf("%s is %s.", name, fe.Tag()))
	}
	return result
}

// SQL marks a persistence failure so that it is answered with SQL-500.
func SQL(err error) error {
	if err == nil {
		return nil
	}
	var bizErr BizError
	if errors.As(err, &bizErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrSQL{Cause: err}
}
