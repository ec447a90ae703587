package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"webgen_ai_server/internal/types"
	"webgen_ai_server/internal/utils"
	"webgen_ai_server/pkg/logger"
	"webgen_ai_server/pkg/metrics"
	"webgen_ai_server/pkg/tracer"
)

// GenerateProject asks the model for a website and parses its reply.
// history must be non-nil; an empty slice is fine.
func (g *Generator) GenerateProject(ctx context.Context, prompt string, history []types.ChatTurn) (bundle *types.ProjectBundle, err error) {
	provider := g.model.Provider()
	defer func() {
		metrics.GenerationTotal.WithLabelValues(provider, outcomeFor(err)).Inc()
	}()

	if strings.TrimSpace(prompt) == "" || history == nil {
		return nil, ErrInvalidInput
	}

	ctx, span := tracer.Start(ctx, "ai.GenerateProject", trace.WithAttributes(
		attribute.String("ai.provider", provider),
		attribute.Int("ai.history_turns", len(history)),
	))
	defer span.End()

	start := time.Now()
	text, err := g.model.Complete(ctx, g.systemPrompt, history, prompt)
	metrics.GenerationDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		reason := utils.ClassifyUpstreamError(err)
		metrics.UpstreamFailures.WithLabelValues(provider, reason).Inc()
		logger.WithFields(map[string]interface{}{
			"provider": provider,
			"reason":   reason,
		}).Errorf("AI service call failed: %v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return nil, &upstreamError{err: err}
	}

	if strings.TrimSpace(text) == "" {
		logger.Warnf("AI service (%s) returned no text output", provider)
		span.SetStatus(codes.Error, "empty response")
		return nil, ErrUpstreamEmptyResponse
	}
	logger.Debugf("LLM raw output (%s): %s", provider, text)

	bundle, err = ParseProjectBundle(utils.StripCodeFences(text))
	if err != nil {
		logger.Warnf("Failed to parse LLM output as a project bundle: %v", err)
		span.SetStatus(codes.Error, "malformed output")
		return nil, err
	}

	span.SetAttributes(attribute.String("project.name", bundle.ProjectName))
	logger.Infof("Generated project %q (html=%d css=%d js=%d bytes)", bundle.ProjectName, len(bundle.HTML), len(bundle.CSS), len(bundle.JS))
	return bundle, nil
}

type rawBundle struct {
	HTML        *string `json:"html"`
	CSS         *string `json:"css"`
	JS          *string `json:"js"`
	ProjectName *string `json:"projectName"`
}

// ParseProjectBundle decodes cleaned model text. It must be one JSON object
// whose html, css, js and projectName are all strings; anything else is a
// *MalformedOutputError carrying the text unchanged.
func ParseProjectBundle(cleaned string) (*types.ProjectBundle, error) {
	var raw rawBundle
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &MalformedOutputError{Raw: cleaned, Err: err}
	}

	var missing []string
	if raw.HTML == nil {
		missing = append(missing, "html")
	}
	if raw.CSS == nil {
		missing = append(missing, "css")
	}
	if raw.JS == nil {
		missing = append(missing, "js")
	}
	if raw.ProjectName == nil {
		missing = append(missing, "projectName")
	}
	if len(missing) > 0 {
		return nil, &MalformedOutputError{
			Raw: cleaned,
			Err: fmt.Errorf("missing keys: %s", strings.Join(missing, ", ")),
		}
	}

	return &types.ProjectBundle{
		HTML:        *raw.HTML,
		CSS:         *raw.CSS,
		JS:          *raw.JS,
		ProjectName: *raw.ProjectName,
	}, nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrUpstreamEmptyResponse):
		return metrics.OutcomeEmptyResponse
	case errors.Is(err, ErrMalformedModelOutput):
		return metrics.OutcomeMalformedJSON
	default:
		return metrics.OutcomeUpstreamFailed
	}
}
