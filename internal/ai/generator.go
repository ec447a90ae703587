package ai

import (
	"context"
	"fmt"
	"net/http"

	"webgen_ai_server/internal/ai/prompts"
	"webgen_ai_server/internal/types"
)

// ChatModel is one conversational AI backend. Complete sends the system
// instruction, the prior turns and the new prompt, and returns the reply text.
type ChatModel interface {
	Complete(ctx context.Context, system string, history []types.ChatTurn, prompt string) (string, error)
	Provider() string
}

// ModelOptions selects and configures a ChatModel.
type ModelOptions struct {
	Provider    string // "openai" or "anthropic"
	APIKey      string
	BaseURL     string // empty selects the provider default
	Model       string
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client // optional, mostly for tests
}

// NewChatModel builds the backend named by opts.Provider.
func NewChatModel(opts ModelOptions) (ChatModel, error) {
	switch opts.Provider {
	case "", ProviderOpenAI:
		return newOpenAIModel(opts), nil
	case ProviderAnthropic:
		return newAnthropicModel(opts), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", opts.Provider)
	}
}

// Generator turns a prompt into a ProjectBundle. It holds no per-request
// state and is safe for concurrent use.
type Generator struct {
	model        ChatModel
	systemPrompt string
}

func NewGenerator(model ChatModel) *Generator {
	return &Generator{
		model:        model,
		systemPrompt: prompts.GetSiteGenerationPrompt(),
	}
}

// Provider reports the backing model's provider name.
func (g *Generator) Provider() string {
	return g.model.Provider()
}
