package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ProjectBundle is the single-page website the model is asked to produce.
type ProjectBundle struct {
	HTML        string `json:"html"`
	CSS         string `json:"css"`
	JS          string `json:"js"`
	ProjectName string `json:"projectName"`
}

// Chat roles after normalisation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatPart is one text part of a Gemini-style turn.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatTurn is one prior turn of a conversation. Both {role, content} and
// Gemini's {role, parts: [{text}]} shapes are accepted.
type ChatTurn struct {
	Role    string     `json:"role"`
	Content string     `json:"content,omitempty"`
	Parts   []ChatPart `json:"parts,omitempty"`
}

// Text returns the turn's text, preferring Content over Parts.
func (t ChatTurn) Text() string {
	if t.Content != "" {
		return t.Content
	}
	texts := make([]string, 0, len(t.Parts))
	for _, p := range t.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "")
}

// NormalizedRole maps "model" and "assistant" to RoleAssistant and anything else to RoleUser.
func (t ChatTurn) NormalizedRole() string {
	switch strings.ToLower(t.Role) {
	case "model", "assistant":
		return RoleAssistant
	default:
		return RoleUser
	}
}

var ErrHistoryNotArray = errors.New("chat_history must be an array")

// ParseChatHistory decodes a raw chat_history value. A missing or null value
// is rejected the same as any other non-array; an empty array is valid.
func ParseChatHistory(raw json.RawMessage) ([]ChatTurn, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrHistoryNotArray
	}
	history := []ChatTurn{}
	if err := json.Unmarshal(trimmed, &history); err != nil {
		return nil, err
	}
	return history, nil
}
