package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope every failure path produces:
// {"success": false, "message": "..."}.
type Response struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewResponse(status int, msg string) Response {
	return Response{Status: status, Success: false, Message: msg}
}

// AbortWithError preserves the original error on the gin context for the
// logging middleware while writing the public envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
