package http

import (
	"errors"
	"log/slog"
	"net/http"

	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps the error kinds of internal/pkg/errs to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity
	case errs.IsInvalidArgument(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err),
		)
		return ctx.JSON(code, Error{Code: code, Message: "internal error"})
	}
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
