package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line", "```json {\"a\":1} ```", `{"a":1}`},
		{"surrounding whitespace", "  \n```JSON\n{}\n```  \n", `{}`},
		{"only fences", "```json\n```", ""},
		{"inner backticks kept", "```json\n{\"js\":\"a=`x`\"}\n```", "{\"js\":\"a=`x`\"}"},
		{"trailing fence only", "{}\n```", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"openai 429", &openai.APIError{HTTPStatusCode: 429, Message: "slow down"}, ReasonRateLimit},
		{"openai 401", fmt.Errorf("wrapped: %w", &openai.APIError{HTTPStatusCode: 401}), ReasonAuth},
		{"openai 503", &openai.APIError{HTTPStatusCode: 503}, ReasonServer},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), ReasonTimeout},
		{"quota text", errors.New("Quota exceeded for project"), ReasonRateLimit},
		{"refused", errors.New("dial tcp: connection refused"), ReasonNetwork},
		{"other", errors.New("boom"), ReasonUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyUpstreamError(tt.err); got != tt.want {
				t.Errorf("ClassifyUpstreamError() = %q, want %q", got, tt.want)
			}
		})
	}
}
