package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"webgen_ai_server/internal/ai"
)

// Client-facing messages. Upstream details stay in the server log.
const (
	msgInvalidInput   = "Invalid input"
	msgEmptyResponse  = "AI did not return text output."
	msgInvalidJSON    = "Invalid JSON"
	msgGenericFailure = "Something went wrong"
)

// errorResponse maps a generation error to its status and body.
func errorResponse(err error) (int, ErrorResponse) {
	var malformed *ai.MalformedOutputError
	switch {
	case errors.Is(err, ai.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: msgInvalidInput}
	case errors.Is(err, ai.ErrUpstreamEmptyResponse):
		return http.StatusInternalServerError, ErrorResponse{Error: msgEmptyResponse}
	case errors.As(err, &malformed):
		raw := malformed.Raw
		return http.StatusInternalServerError, ErrorResponse{Error: msgInvalidJSON, Raw: &raw}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: msgGenericFailure}
	}
}

func writeError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	c.JSON(status, body)
}
