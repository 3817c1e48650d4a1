package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// serverError logs err against the request and answers 500 without
// exposing err to the client.
func serverError(c *gin.Context, logger *slog.Logger, code, message string, err error) {
	attrs := []any{
		slog.String("request_method", c.Request.Method),
		slog.String("request_url", c.Request.URL.String()),
		slog.String("code", code),
	}
	var se *repository.StoreError
	if errors.As(err, &se) && se.Code() != "" {
		attrs = append(attrs, slog.String("sqlstate", se.Code()))
	}
	logger.Error(err.Error(), attrs...)

	writeError(c, http.StatusInternalServerError, code, message)
}
