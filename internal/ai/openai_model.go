package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"webgen_ai_server/internal/types"
)

const (
	ProviderOpenAI = "openai"

	// DefaultOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

type openAIModel struct {
	client      *openai.Client
	model       string
	temperature float32
}

func newOpenAIModel(opts ModelOptions) *openAIModel {
	config := openai.DefaultConfig(opts.APIKey)
	config.BaseURL = DefaultOpenAIBaseURL
	if opts.BaseURL != "" {
		config.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		config.HTTPClient = opts.HTTPClient
	}

	return &openAIModel{
		client:      openai.NewClientWithConfig(config),
		model:       opts.Model,
		temperature: opts.Temperature,
	}
}

func (m *openAIModel) Provider() string { return ProviderOpenAI }

func (m *openAIModel) Complete(ctx context.Context, system string, history []types.ChatTurn, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	for _, turn := range history {
		text := turn.Text()
		if text == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if turn.NormalizedRole() == types.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: text})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.model,
		Messages:    messages,
		Temperature: m.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
