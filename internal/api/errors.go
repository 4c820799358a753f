package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/interviewer/internal/generation"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// statusFor maps request and parameter problems to 422 and everything else
// to 500.
func statusFor(err error) int {
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, generation.ErrInvalidParams) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeDetail(c *echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{Detail: msg})
}
