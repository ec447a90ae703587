package ai

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"webgen_ai_server/internal/types"
)

const (
	ProviderAnthropic = "anthropic"

	defaultAnthropicMaxTokens = 8192
)

type anthropicModel struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

func newAnthropicModel(opts ModelOptions) *anthropicModel {
	// The relay never retries; a failed call is reported as-is.
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	return &anthropicModel{
		client:      anthropic.NewClient(reqOpts...),
		model:       opts.Model,
		maxTokens:   maxTokens,
		temperature: float64(opts.Temperature),
	}
}

func (m *anthropicModel) Provider() string { return ProviderAnthropic }

func (m *anthropicModel) Complete(ctx context.Context, system string, history []types.ChatTurn, prompt string) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		text := turn.Text()
		if text == "" {
			continue
		}
		if turn.NormalizedRole() == types.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: m.maxTokens,
		Messages:  messages,
		System: []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: system,
			},
		},
	}
	if m.temperature > 0 {
		params.Temperature = anthropic.Float(m.temperature)
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range resp.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
