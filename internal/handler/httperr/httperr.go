// Package httperr defines the JSON error envelope shared by all handlers.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the body written for every non-2xx reply. Status travels
// alongside for middleware but is never serialized.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string) Response {
	var r Response
	r.Status = status
	r.Error.Message = msg
	return r
}

// Abort records err on the gin context for the logging middleware and
// writes the envelope. The original error is kept as public-typed Meta
// so ErrorHandler can recover the full response downstream.
func Abort(c *gin.Context, status int, err error, msg string) {
	AbortWithError(c, status, err, msg, nil)
}

func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	resp := New(status, msg)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
