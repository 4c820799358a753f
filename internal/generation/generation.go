// Package generation turns a prompt into the trimmed continuation of an
// external causal language model.
//
// Two capability shapes are supported. A Pipeline returns only the new text.
// A Model works on token ids and returns the prompt ids followed by the new
// ones, so the decoded prompt has to be cut off again. Both are wrapped by
// Adapter, which callers use through the Generator interface.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generator is the one capability front ends depend on.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) (Result, error)
}

// Result is the continuation with surrounding whitespace removed.
type Result struct {
	Text    string
	Elapsed time.Duration
}

// Pipeline generates text and returns only the continuation.
type Pipeline interface {
	Complete(ctx context.Context, prompt string, params Params) (string, error)
}

// Model is a token-level causal LM. Generate returns the input ids followed
// by the generated ids.
type Model interface {
	Decoder
	Encode(ctx context.Context, text string) ([]int, error)
	Generate(ctx context.Context, ids []int, params Params) ([]int, error)
}

type source func(ctx context.Context, prompt string, params Params) (Raw, error)

// Adapter implements Generator over a capability and an echo strategy.
// It holds no per-call state and is safe for concurrent use when the
// capability is.
type Adapter struct {
	name  string
	src   source
	strip EchoStrategy
	clock func() time.Time
}

// NewPipelineAdapter wraps a continuation-only capability.
func NewPipelineAdapter(p Pipeline) *Adapter {
	return &Adapter{
		name: "pipeline",
		src: func(ctx context.Context, prompt string, params Params) (Raw, error) {
			text, err := safeComplete(ctx, p, prompt, params)
			if err != nil {
				return Raw{}, err
			}
			return Raw{Text: text}, nil
		},
		strip: Continuation{},
		clock: time.Now,
	}
}

// NewModelAdapter wraps a full-sequence capability. The decoded prompt is
// removed with DecodedPrefix.
func NewModelAdapter(m Model) *Adapter {
	return &Adapter{
		name: "model",
		src: func(ctx context.Context, prompt string, params Params) (Raw, error) {
			ids, err := safeEncode(ctx, m, prompt)
			if err != nil {
				return Raw{}, fmt.Errorf("encode prompt: %w", err)
			}
			out, err := safeGenerate(ctx, m, ids, params)
			if err != nil {
				return Raw{}, err
			}
			text, err := safeDecode(ctx, m, out)
			if err != nil {
				return Raw{}, fmt.Errorf("decode output: %w", err)
			}
			return Raw{Text: text, InputIDs: ids}, nil
		},
		strip: DecodedPrefix{Decoder: m},
		clock: time.Now,
	}
}

// WithEchoStrategy returns a copy of a that strips output with s.
func (a *Adapter) WithEchoStrategy(s EchoStrategy) *Adapter {
	cp := *a
	cp.strip = s
	return &cp
}

// Loader names the capability shape behind a, "pipeline" or "model".
func (a *Adapter) Loader() string {
	return a.name
}

func (a *Adapter) Generate(ctx context.Context, prompt string, params Params) (Result, error) {
	if ctx == nil {
		return Result{}, fmt.Errorf("context is required")
	}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := a.clock()
	raw, err := a.src(ctx, prompt, params)
	if err != nil {
		return Result{}, err
	}
	text, err := a.strip.Strip(ctx, raw)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Text:    strings.TrimSpace(text),
		Elapsed: a.clock().Sub(start),
	}, nil
}
