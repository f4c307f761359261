package resp

import (
	"errors"
	"net/http"

	"github.com/BeeBeBong/Emenu/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": apperr.KindInvalidArgument, "detail": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": apperr.KindUnauthorized, "detail": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": apperr.KindForbidden, "detail": msg})
}

func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal", "detail": err.Error()})
}

// Error renders a taxonomy error with its mapped HTTP status. Plain
// errors fall through to 500.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		ServerError(c, err)
		return
	}
	c.JSON(statusOf(e.Kind), gin.H{"ok": false, "error": e.Kind, "detail": e.Detail})
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidState:
		return http.StatusUnprocessableEntity
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
