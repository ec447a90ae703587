package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webgen_ai_server/internal/ai"
	"webgen_ai_server/internal/types"
	"webgen_ai_server/pkg/logger"
)

// ProjectGenerator is the relay's one operation.
type ProjectGenerator interface {
	GenerateProject(ctx context.Context, prompt string, history []types.ChatTurn) (*types.ProjectBundle, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator ProjectGenerator
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator ProjectGenerator) *APIHandler {
	return &APIHandler{generator: generator}
}

// --- Structs for API Requests/Responses ---

// GenerateRequest keeps chat_history raw so a non-array can be told apart
// from an empty one.
type GenerateRequest struct {
	Prompt      string          `json:"prompt"`
	ChatHistory json.RawMessage `json:"chat_history"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string  `json:"error"`
	Raw   *string `json:"raw,omitempty"`
}

// --- API Handlers ---

// POST /generate
func (h *APIHandler) Generate(c *gin.Context) {
	requestID := c.GetString(requestIDKey)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warnf("[%s] rejected generate request: %v", requestID, err)
		writeError(c, ai.ErrInvalidInput)
		return
	}
	history, err := types.ParseChatHistory(req.ChatHistory)
	if err != nil || strings.TrimSpace(req.Prompt) == "" {
		logger.Warnf("[%s] rejected generate request: prompt empty or chat_history invalid", requestID)
		writeError(c, ai.ErrInvalidInput)
		return
	}

	logger.Infof("[%s] Received generation request (%d history turns)", requestID, len(history))

	bundle, err := h.generator.GenerateProject(c.Request.Context(), req.Prompt, history)
	if err != nil {
		logger.Errorf("[%s] Error generating site: %v", requestID, err)
		writeError(c, err)
		return
	}

	logger.Infof("[%s] Site generation successful: %s", requestID, bundle.ProjectName)
	c.JSON(http.StatusOK, bundle)
}
