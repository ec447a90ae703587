// Package relayclient calls the generation relay over HTTP.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"webgen_ai_server/internal/types"
	"webgen_ai_server/pkg/logger"
)

// Error is a non-200 reply from the relay.
type Error struct {
	Status  int
	Message string
	Raw     string // model output, when the relay included it
}

func (e *Error) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("relay returned %d: %s (raw: %s)", e.Status, e.Message, e.Raw)
	}
	return fmt.Sprintf("relay returned %d: %s", e.Status, e.Message)
}

// Client posts prompts to the relay's /generate endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a relay client. A nil httpClient gets one with no timeout:
// generation is never aborted from this side.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type generateRequest struct {
	Prompt      string           `json:"prompt"`
	ChatHistory []types.ChatTurn `json:"chat_history"`
}

type errorBody struct {
	Error string  `json:"error"`
	Raw   *string `json:"raw"`
}

// Generate requests a project for prompt. History is always sent empty.
func (c *Client) Generate(ctx context.Context, prompt string) (*types.ProjectBundle, error) {
	jsonData, err := json.Marshal(generateRequest{Prompt: prompt, ChatHistory: []types.ChatTurn{}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debugf("Posting generation request to %s", req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to relay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		relayErr := &Error{Status: resp.StatusCode, Message: resp.Status}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			relayErr.Message = eb.Error
			if eb.Raw != nil {
				relayErr.Raw = *eb.Raw
			}
		}
		return nil, relayErr
	}

	var bundle types.ProjectBundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode relay response: %w", err)
	}
	return &bundle, nil
}
