// Package ollama is a minimal client for a local Ollama server, used to
// generate asset descriptions.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/outsmart/catalogue/internal/catalogue"
	"github.com/outsmart/catalogue/internal/config"
	apperrors "github.com/outsmart/catalogue/internal/errors"
)

// Client talks to one Ollama server.
type Client struct {
	cfg        config.OllamaConfig
	httpClient *http.Client
}

// NewClient creates a client from Ollama configuration.
func NewClient(cfg config.OllamaConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			// Generation on CPU-only hosts is slow
			Timeout: 5 * time.Minute,
		},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// ModelInfo is one entry from the server's model list.
type ModelInfo struct {
	Name string `json:"name"`
}

type tagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// Models lists the models installed on the server.
func (c *Client) Models(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Host+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrOllamaUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrOllamaUnavailable, resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("failed to parse model list: %w", err)
	}

	return tags.Models, nil
}

// Ping checks that the server is reachable and the configured model is
// installed.
func (c *Client) Ping(ctx context.Context) error {
	models, err := c.Models(ctx)
	if err != nil {
		return err
	}

	for _, m := range models {
		if m.Name == c.cfg.Model || strings.SplitN(m.Name, ":", 2)[0] == c.cfg.Model {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", apperrors.ErrModelNotFound, c.cfg.Model)
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs one non-streaming generation and returns the trimmed
// response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": c.cfg.Temperature,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrOllamaUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var gen generateResponse
	if err := json.Unmarshal(raw, &gen); err != nil {
		return "", fmt.Errorf("failed to parse generation response: %w", err)
	}

	return strings.TrimSpace(gen.Response), nil
}

// DescribePrompt builds the description prompt for an asset based on its
// media type.
func DescribePrompt(assetType catalogue.AssetType, name string) string {
	switch assetType {
	case catalogue.TypeImage:
		return fmt.Sprintf("Describe what this image file named '%s' might contain based on its filename and context. Be concise and descriptive.", name)
	case catalogue.TypeAudio:
		return fmt.Sprintf("Describe what this audio file named '%s' might be based on its filename. Consider if it could be music, sound effects, or voice recording.", name)
	case catalogue.TypeVideo:
		return fmt.Sprintf("Describe what this video file named '%s' might contain based on its filename and context.", name)
	default:
		return fmt.Sprintf("Describe what this file named '%s' might be used for.", name)
	}
}
