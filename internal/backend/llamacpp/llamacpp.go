// Package llamacpp drives a llama.cpp HTTP server. It can act as a
// continuation-only pipeline or as a token-level model whose output repeats
// the prompt ids.
package llamacpp

import (
	"context"
	"fmt"
	"time"

	"github.com/samcharles93/interviewer/internal/backend/transport"
	"github.com/samcharles93/interviewer/internal/generation"
)

// DefaultEndpoint is where llama-server listens unless told otherwise.
const DefaultEndpoint = "http://127.0.0.1:8080"

type Client struct {
	t *transport.Client
}

func New(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	t, err := transport.New(endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("llamacpp: %w", err)
	}
	t.SetBearer(apiKey)
	return &Client{t: t}, nil
}

type tokenizeRequest struct {
	Content    string `json:"content"`
	AddSpecial bool   `json:"add_special"`
}

type tokenizeResponse struct {
	Tokens []int `json:"tokens"`
}

type detokenizeRequest struct {
	Tokens []int `json:"tokens"`
}

type detokenizeResponse struct {
	Content string `json:"content"`
}

type completionRequest struct {
	// Prompt is a string or a slice of token ids.
	Prompt        any     `json:"prompt"`
	NPredict      int     `json:"n_predict"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	ReturnTokens  bool    `json:"return_tokens"`
	Stream        bool    `json:"stream"`
}

type completionResponse struct {
	Content string `json:"content"`
	Tokens  []int  `json:"tokens"`
}

func newCompletion(prompt any, budget int, p generation.Params, returnTokens bool) completionRequest {
	temp := p.Temperature
	if !p.DoSample {
		temp = 0
	}
	return completionRequest{
		Prompt:        prompt,
		NPredict:      budget,
		Temperature:   temp,
		TopP:          p.TopP,
		RepeatPenalty: p.RepetitionPenalty,
		ReturnTokens:  returnTokens,
	}
}

// Encode tokenizes text with the model's special-token rules.
func (c *Client) Encode(ctx context.Context, text string) ([]int, error) {
	var resp tokenizeResponse
	if err := c.t.PostJSON(ctx, "/tokenize", tokenizeRequest{Content: text, AddSpecial: true}, &resp); err != nil {
		return nil, fmt.Errorf("llamacpp: tokenize: %w", err)
	}
	return resp.Tokens, nil
}

func (c *Client) Decode(ctx context.Context, ids []int) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	var resp detokenizeResponse
	if err := c.t.PostJSON(ctx, "/detokenize", detokenizeRequest{Tokens: ids}, &resp); err != nil {
		return "", fmt.Errorf("llamacpp: detokenize: %w", err)
	}
	return resp.Content, nil
}

// Generate returns ids followed by the sampled tokens.
func (c *Client) Generate(ctx context.Context, ids []int, p generation.Params) ([]int, error) {
	out := append(make([]int, 0, len(ids)+max(p.MaxNewTokens, 0)), ids...)
	budget := p.ResolveBudget(ctx, len(ids))
	if budget == 0 {
		return out, nil
	}
	var resp completionResponse
	if err := c.t.PostJSON(ctx, "/completion", newCompletion(ids, budget, p, true), &resp); err != nil {
		return nil, fmt.Errorf("llamacpp: completion: %w", err)
	}
	return append(out, resp.Tokens...), nil
}

// Complete sends the prompt as text and returns the server's continuation.
func (c *Client) Complete(ctx context.Context, prompt string, p generation.Params) (string, error) {
	budget := p.NewTokenBudget(0)
	if p.MaxNewTokens <= 0 && p.MaxLength > 0 {
		ids, err := c.Encode(ctx, prompt)
		if err != nil {
			return "", err
		}
		budget = p.ResolveBudget(ctx, len(ids))
	}
	if budget == 0 {
		return "", nil
	}
	var resp completionResponse
	if err := c.t.PostJSON(ctx, "/completion", newCompletion(prompt, budget, p, false), &resp); err != nil {
		return "", fmt.Errorf("llamacpp: completion: %w", err)
	}
	return resp.Content, nil
}
