package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

type HandlerOpts struct{}

// Handler is a route handler returning data for the standard JSON envelope
// or an HTTPError describing which precondition failed.
type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts a Handler into a gin handler producing the
// {success, data|message} envelope.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

// HandleHTTPErrorRes writes the error response. Break the route after
// calling this function.
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
	})
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("malformed request body: %v", err),
	}
}

func BuildDbHTTPErr(err error) *HTTPError {
	logrus.WithError(err).Error("database error occurred")
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}
