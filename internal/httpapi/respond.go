// Package httpapi holds the pieces shared by every HTTP handler: the
// uniform response envelope, outcome-to-status mapping and middleware.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/pkg/i18n"
)

// Response is the envelope every endpoint answers with. UIs branch on
// Success and show Message to the end user.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *gin.Context, messageID string, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: i18n.T(messageID),
		Data:    data,
	})
}

func OKData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func Created(c *gin.Context, messageID string, data any) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: i18n.T(messageID),
		Data:    data,
	})
}

func BadRequest(c *gin.Context, messageID string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: i18n.T(messageID),
	})
}

// Fail maps the error taxonomy to HTTP statuses. Anything outside the
// taxonomy is an internal failure; the cause never reaches the client.
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	}

	c.JSON(status, Response{
		Success: false,
		Message: i18n.TData(apperr.MessageID(err), apperr.TemplateData(err)),
	})
}
