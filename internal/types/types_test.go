package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseChatHistory_RejectsNonArrays(t *testing.T) {
	for _, raw := range []string{"", "null", `{}`, `"turns"`, `3`} {
		if _, err := ParseChatHistory(json.RawMessage(raw)); !errors.Is(err, ErrHistoryNotArray) {
			t.Errorf("ParseChatHistory(%q) error = %v, want ErrHistoryNotArray", raw, err)
		}
	}
}

func TestParseChatHistory_Empty(t *testing.T) {
	history, err := ParseChatHistory(json.RawMessage(" [] "))
	if err != nil {
		t.Fatalf("ParseChatHistory() error = %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Errorf("history = %#v, want empty non-nil slice", history)
	}
}

func TestParseChatHistory_BothShapes(t *testing.T) {
	raw := `[
		{"role":"user","parts":[{"text":"make a "},{"text":"bakery site"}]},
		{"role":"model","content":"{\"html\":\"...\"}"}
	]`
	history, err := ParseChatHistory(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("ParseChatHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len = %d, want 2", len(history))
	}
	if got := history[0].Text(); got != "make a bakery site" {
		t.Errorf("Text() = %q", got)
	}
	if got := history[0].NormalizedRole(); got != RoleUser {
		t.Errorf("role = %q, want user", got)
	}
	if got := history[1].NormalizedRole(); got != RoleAssistant {
		t.Errorf("role = %q, want assistant", got)
	}
}

func TestParseChatHistory_BadElement(t *testing.T) {
	if _, err := ParseChatHistory(json.RawMessage(`[1, 2]`)); err == nil {
		t.Error("array of numbers should fail to decode")
	}
}
