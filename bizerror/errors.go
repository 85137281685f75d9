package bizerror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation = "VAL-400"
	CodeIDNotFound = "ID-404"
	CodeSQL        = "SQL-500"
)

var (
	ErrTimerRunning    = errors.New("Time registration timer is already running.")
	ErrTimerNotRunning = errors.New("Time registration timer is not running.")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status int
	Body   ErrorBody
}

// ErrorBody is the payload of every failed request. Clients depend on its exact shape.
type ErrorBody struct {
	Code   string      `json:"code"`
	Cause  string      `json:"cause"`
	Errors FieldErrors `json:"errors"`
}

type FieldError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type FieldErrors []FieldError

func (errs *FieldErrors) Add(name, message string) {
	*errs = append(*errs, FieldError{Name: name, Error: message})
}

func (errs *FieldErrors) Addf(name, format string, args ...interface{}) {
	errs.Add(name, fmt.Sprintf(format, args...))
}

type ErrValidation struct {
	Errors FieldErrors
}

func NewErrValidation(errs FieldErrors) *ErrValidation {
	return &ErrValidation{Errors: errs}
}

func (e *ErrValidation) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Errors[0].Name + ": " + e.Errors[0].Error
}

func (e *ErrValidation) Respond() *BizErrorDetail {
	errs := e.Errors
	if errs == nil {
		errs = FieldErrors{}
	}
	return &BizErrorDetail{Status: http.StatusBadRequest,
		Body: ErrorBody{Code: CodeValidation, Cause: "Validation failed", Errors: errs}}
}

// ErrIDNotFound reports an identifier that does not resolve to a row. It is answered with
// 400, not 404, for compatibility with existing clients.
type ErrIDNotFound struct {
	Name    string
	Message string
}

func NewErrProjectNotFound(id interface{}) *ErrIDNotFound {
	return &ErrIDNotFound{Name: "ProjectId", Message: fmt.Sprintf("Project with ID %v does not exist.", id)}
}

func NewErrTaskNotFound(id interface{}) *ErrIDNotFound {
	return &ErrIDNotFound{Name: "TaskId", Message: fmt.Sprintf("Task with ID %v does not exist.", id)}
}

func NewErrTimeRecordNotFound(id interface{}) *ErrIDNotFound {
	return &ErrIDNotFound{Name: "TimeRecordId", Message: fmt.Sprintf("Time record with ID %v does not exist.", id)}
}

func (e *ErrIDNotFound) Error() string {
	return e.Message
}

func (e *ErrIDNotFound) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest,
		Body: ErrorBody{Code: CodeIDNotFound, Cause: "ID not found", Errors: FieldErrors{{Name: e.Name, Error: e.Message}}}}
}

type ErrSQL struct {
	Cause error
}

func (e *ErrSQL) Error() string {
	if e.Cause != nil {
		return "sql: " + e.Cause.Error()
	}
	return "sql failure"
}

func (e *ErrSQL) Unwrap() error {
	return e.Cause
}

func (e *ErrSQL) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusInternalServerError,
		Body: ErrorBody{Code: CodeSQL, Cause: "Database operation failed", Errors: FieldErrors{}}}
}

// ErrBadParam wraps request binding failures (malformed body, bad query).
type ErrBadParam struct {
	Name  string
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}

func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "bad param"
}

func (e *ErrBadParam) Respond() *BizErrorDetail {
	name := e.Name
	if name == "" {
		name = "Body"
	}
	return &BizErrorDetail{Status: http.StatusBadRequest,
		Body: ErrorBody{Code: CodeValidation, Cause: "Validation failed", Errors: FieldErrors{{Name: name, Error: e.Error()}}}}
}
