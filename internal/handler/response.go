package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/model"
	apperrors "github.com/jwalitptl/clinic-admin/pkg/errors"
)

// DateLayout is the layout of date query parameters.
const DateLayout = "2006-01-02"

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewOutcomeResponse reports an applied mutation.
func NewOutcomeResponse(outcome model.Outcome) *Response {
	return &Response{
		Status: "success",
		Data:   gin.H{"outcome": outcome},
	}
}

// RespondOutcome writes 200 for an applied mutation and records a not found
// error otherwise.
func RespondOutcome(c *gin.Context, outcome model.Outcome, resource string) {
	if !outcome.Applied() {
		_ = c.Error(apperrors.NotFound(resource, nil))
		return
	}
	c.JSON(http.StatusOK, NewOutcomeResponse(outcome))
}

// RespondFound writes data, or records a not found error when found is false.
func RespondFound(c *gin.Context, found bool, data interface{}, resource string) {
	if !found {
		_ = c.Error(apperrors.NotFound(resource, nil))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// ParseID reads an integer path parameter. On failure a bad request error is
// recorded and ok is false.
func ParseID(c *gin.Context, param string) (model.ID, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		_ = c.Error(apperrors.BadRequest("invalid "+param, err))
		return 0, false
	}
	return model.ID(id), true
}

// ParseDate reads a YYYY-MM-DD value as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// BindError records a request binding failure as a bad request.
func BindError(c *gin.Context, err error) {
	_ = c.Error(apperrors.BadRequest("invalid request", err))
}
