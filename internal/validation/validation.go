package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Result is either a normalized Record or a non-empty list of field errors
// together with the submission exactly as it arrived.
type Result[T, R any] struct {
	Record   T
	Errors   []FieldError
	Original R
}

func (r Result[T, R]) Valid() bool {
	return len(r.Errors) == 0
}

// Bind decodes a form or JSON submission into dst. Field rules are not
// applied here; malformed bodies are answered with 400 and false.
func Bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
			Errors: []FieldError{
				{
					Field:   "",
					Rule:    "syntax",
					Message: err.Error(),
				},
			},
		})
		return false
	}

	return true
}
