package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/samcharles93/interviewer/internal/logger"
)

// Sampling constants shared by every front end.
const (
	TopP                   = 0.9
	RepetitionPenalty      = 1.1
	DefaultTemperature     = 0.7
	DefaultMaxNewTokens    = 200
	ServeNoRepeatNgramSize = 3
	InteractiveMaxLength   = 1024
	MaxTemperature         = 2.0
)

var ErrInvalidParams = errors.New("invalid_params")

type invalidParamsError struct {
	msg string
}

func (e invalidParamsError) Error() string {
	return e.msg
}

func (e invalidParamsError) Unwrap() error {
	return ErrInvalidParams
}

func newInvalidParams(format string, args ...any) error {
	return invalidParamsError{msg: fmt.Sprintf(format, args...)}
}

// Params is the sampling policy of a single generation call.
//
// MaxNewTokens caps the continuation. MaxLength caps prompt plus
// continuation and only applies when MaxNewTokens is zero. Both zero leaves
// the limit to the backend.
type Params struct {
	MaxNewTokens      int
	MaxLength         int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
	NoRepeatNgramSize int
	DoSample          bool
}

// InteractiveParams is the policy of the interactive form: total length
// bounded, no n-gram ban.
func InteractiveParams() Params {
	return Params{
		MaxLength:         InteractiveMaxLength,
		Temperature:       DefaultTemperature,
		TopP:              TopP,
		RepetitionPenalty: RepetitionPenalty,
		DoSample:          true,
	}
}

// ServeParams is the policy of the HTTP endpoint.
func ServeParams(maxNewTokens int, temperature float64) Params {
	return Params{
		MaxNewTokens:      maxNewTokens,
		Temperature:       temperature,
		TopP:              TopP,
		RepetitionPenalty: RepetitionPenalty,
		NoRepeatNgramSize: ServeNoRepeatNgramSize,
		DoSample:          true,
	}
}

// Validate reports the first out-of-range field. Errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	if p.MaxNewTokens < 0 {
		return newInvalidParams("max_new_tokens must not be negative, got %d", p.MaxNewTokens)
	}
	if p.MaxLength < 0 {
		return newInvalidParams("max_length must not be negative, got %d", p.MaxLength)
	}
	if p.DoSample && (p.Temperature <= 0 || p.Temperature > MaxTemperature) {
		return newInvalidParams("temperature must be in (0, %g], got %g", MaxTemperature, p.Temperature)
	}
	if p.TopP <= 0 || p.TopP > 1 {
		return newInvalidParams("top_p must be in (0, 1], got %g", p.TopP)
	}
	if p.RepetitionPenalty <= 0 {
		return newInvalidParams("repetition_penalty must be positive, got %g", p.RepetitionPenalty)
	}
	if p.NoRepeatNgramSize < 0 {
		return newInvalidParams("no_repeat_ngram_size must not be negative, got %d", p.NoRepeatNgramSize)
	}
	return nil
}

// NewTokenBudget returns how many tokens a backend may append to a prompt of
// promptTokens tokens, or -1 when the backend default applies.
func (p Params) NewTokenBudget(promptTokens int) int {
	if p.MaxNewTokens > 0 {
		return p.MaxNewTokens
	}
	if p.MaxLength > 0 {
		return max(p.MaxLength-promptTokens, 0)
	}
	return -1
}

// ResolveBudget is NewTokenBudget for backends. When the prompt alone fills
// MaxLength it logs a warning, because the caller gets an empty reply.
func (p Params) ResolveBudget(ctx context.Context, promptTokens int) int {
	n := p.NewTokenBudget(promptTokens)
	if n == 0 {
		logger.FromContext(ctx).Warn("prompt fills max_length, nothing will be generated; raise max_length or set max_new_tokens",
			"prompt_tokens", promptTokens, "max_length", p.MaxLength)
	}
	return n
}
