// Package hf talks to a Hugging Face text-generation endpoint: an Inference
// Endpoint or any server that runs the transformers text-generation pipeline
// behind the {"inputs", "parameters"} request shape.
package hf

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/samcharles93/interviewer/internal/backend/transport"
	"github.com/samcharles93/interviewer/internal/generation"
)

// Client is a pipeline-style capability: the endpoint is always asked for the
// continuation only.
type Client struct {
	t *transport.Client
}

type Option func(*Client)

// WithToken authenticates with a Hugging Face access token.
func WithToken(token string) Option {
	return func(c *Client) { c.t.SetBearer(token) }
}

func New(endpoint string, timeout time.Duration, opts ...Option) (*Client, error) {
	t, err := transport.New(endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("hf: %w", err)
	}
	c := &Client{t: t}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
	Options    options    `json:"options"`
}

type parameters struct {
	MaxNewTokens      int     `json:"max_new_tokens,omitempty"`
	MaxLength         int     `json:"max_length,omitempty"`
	Temperature       float64 `json:"temperature"`
	DoSample          bool    `json:"do_sample"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size,omitempty"`
	ReturnFullText    bool    `json:"return_full_text"`
}

type options struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type generated struct {
	GeneratedText *string `json:"generated_text"`
}

func newRequest(prompt string, p generation.Params) request {
	params := parameters{
		MaxNewTokens:      p.MaxNewTokens,
		Temperature:       p.Temperature,
		DoSample:          p.DoSample,
		TopP:              p.TopP,
		RepetitionPenalty: p.RepetitionPenalty,
		NoRepeatNgramSize: p.NoRepeatNgramSize,
		ReturnFullText:    false,
	}
	if p.MaxNewTokens == 0 {
		params.MaxLength = p.MaxLength
	}
	return request{
		Inputs:     prompt,
		Parameters: params,
		// Sampling is stochastic; a cached answer would repeat itself.
		Options: options{WaitForModel: true, UseCache: false},
	}
}

// Complete runs the pipeline and returns the first generated sequence.
func (c *Client) Complete(ctx context.Context, prompt string, p generation.Params) (string, error) {
	var raw json.RawMessage
	if err := c.t.PostJSON(ctx, "", newRequest(prompt, p), &raw); err != nil {
		return "", fmt.Errorf("hf: %w", err)
	}
	text, err := parseGenerated(raw)
	if err != nil {
		return "", fmt.Errorf("hf: %w", err)
	}
	return text, nil
}

// parseGenerated accepts the pipeline's list form, the nested list returned
// for batched inputs and a bare object.
func parseGenerated(raw json.RawMessage) (string, error) {
	var list []generated
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 || list[0].GeneratedText == nil {
			return "", fmt.Errorf("response has no generated_text")
		}
		return *list[0].GeneratedText, nil
	}
	var nested [][]generated
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 || nested[0][0].GeneratedText == nil {
			return "", fmt.Errorf("response has no generated_text")
		}
		return *nested[0][0].GeneratedText, nil
	}
	var single generated
	if err := json.Unmarshal(raw, &single); err == nil && single.GeneratedText != nil {
		return *single.GeneratedText, nil
	}
	return "", fmt.Errorf("unexpected response: %s", string(raw))
}
