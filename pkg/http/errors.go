package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx API reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorJSON replies with status and a plain {"error": message} body.
func ErrorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Error: message})
}

// ValidationFailed replies 400 with the field-level validation errors.
func ValidationFailed(c echo.Context, errs []ValidationError) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
