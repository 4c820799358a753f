// Package gemini generates continuations with the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/samcharles93/interviewer/internal/generation"
)

const DefaultModel = "gemini-2.0-flash"

type Client struct {
	client *genai.Client
	model  string
}

// Config selects the model and, for tests or proxies, a different base URL.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required (set GEMINI_API_KEY)")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Model() string {
	return c.model
}

func generateConfig(p generation.Params) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		TopP: genai.Ptr(float32(p.TopP)),
	}
	if p.DoSample {
		cfg.Temperature = genai.Ptr(float32(p.Temperature))
	} else {
		cfg.Temperature = genai.Ptr(float32(0))
	}
	// Gemini has no prompt-length budget, so MaxLength falls back to the
	// service default.
	if p.MaxNewTokens > 0 {
		cfg.MaxOutputTokens = int32(p.MaxNewTokens)
	}
	return cfg
}

// Complete returns the model's reply. Gemini never echoes the prompt.
func (c *Client) Complete(ctx context.Context, prompt string, p generation.Params) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), generateConfig(p))
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	return resp.Text(), nil
}
