// Package httputil writes error bodies in the {"detail": ...} shape the
// hospital backend uses.
package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-console/pkg/errors"
)

// DetailResponse is the backend's error body.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// AbortWithDetail ends the request with status and msg.
func AbortWithDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, DetailResponse{Detail: msg})
}

// RespondWithError maps an AppError onto its status and message. Anything
// else is a 500 whose cause stays out of the body.
func RespondWithError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		AbortWithDetail(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	AbortWithDetail(c, appErr.StatusCode(), appErr.Message)
}
