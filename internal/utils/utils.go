package utils

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"
)

const codeFence = "```"

// StripCodeFences removes a leading ``` or ```json fence and a trailing ```
// fence from model output, then trims surrounding whitespace. Backticks
// elsewhere in the text are left alone.
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, codeFence) {
		cleaned = cleaned[len(codeFence):]
		if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
			cleaned = cleaned[4:]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	cleaned = strings.TrimSuffix(cleaned, codeFence)
	return strings.TrimSpace(cleaned)
}

// Upstream failure reasons reported by ClassifyUpstreamError.
const (
	ReasonRateLimit = "rate_limit"
	ReasonAuth      = "auth"
	ReasonTimeout   = "timeout"
	ReasonServer    = "server"
	ReasonNetwork   = "network"
	ReasonUnknown   = "unknown"
)

// ClassifyUpstreamError labels a failure from the AI service for logs and metrics.
func ClassifyUpstreamError(err error) string {
	if err == nil {
		return ""
	}

	// Typed API errors carry the HTTP status.
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		if reason := reasonForStatus(openAIErr.HTTPStatusCode); reason != "" {
			return reason
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reason := reasonForStatus(reqErr.HTTPStatusCode); reason != "" {
			return reason
		}
	}
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		if reason := reasonForStatus(anthropicErr.StatusCode); reason != "" {
			return reason
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ReasonTimeout
		}
		return ReasonNetwork
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "rate limit") || strings.Contains(errMsg, "quota"):
		return ReasonRateLimit
	case strings.Contains(errMsg, "timeout"):
		return ReasonTimeout
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "no such host"):
		return ReasonNetwork
	}
	return ReasonUnknown
}

func reasonForStatus(status int) string {
	switch {
	case status == 429:
		return ReasonRateLimit
	case status == 401 || status == 403:
		return ReasonAuth
	case status == 408 || status == 504:
		return ReasonTimeout
	case status >= 500:
		return ReasonServer
	}
	return ""
}
