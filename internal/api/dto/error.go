package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// ErrorBody carries a machine-readable kind and a human-readable message.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewError builds an error envelope.
func NewError(kind, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Kind: kind, Message: message}}
}

// RenderError writes a service error with its mapped status. Foreign and
// internal errors render with a fixed message so causes never leak.
func RenderError(c *gin.Context, err error) {
	message := "internal server error"

	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.KindInternal {
		message = e.Message
	}

	c.JSON(apperr.HTTPStatus(err), NewError(string(apperr.KindOf(err)), message))
}

// RenderBindingError reports a malformed request body or query string.
// Field-level validator failures are flattened into one readable message.
func RenderBindingError(c *gin.Context, err error) {
	message := err.Error()

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed '%s' validation", fe.Field(), fe.Tag()))
		}
		message = strings.Join(parts, "; ")
	}

	c.JSON(http.StatusBadRequest, NewError(string(apperr.KindValidation), message))
}
