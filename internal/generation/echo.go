package generation

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Raw is what a capability produced before echo stripping.
type Raw struct {
	// Text is the decoded output. Depending on the capability it may start
	// with the decoded prompt.
	Text string
	// InputIDs are the prompt token ids, set by token-level capabilities.
	InputIDs []int
}

// EchoStrategy removes whatever part of a raw output repeats the input.
type EchoStrategy interface {
	Strip(ctx context.Context, raw Raw) (string, error)
}

// Continuation is used with capabilities that already return only the newly
// generated text.
type Continuation struct{}

func (Continuation) Strip(_ context.Context, raw Raw) (string, error) {
	return raw.Text, nil
}

// Decoder turns token ids back into text.
type Decoder interface {
	Decode(ctx context.Context, ids []int) (string, error)
}

// DecodedPrefix drops the decoded prompt from the front of a full-sequence
// output. The prompt ids are decoded on their own and exactly that many
// characters are cut from the output; the output text is not searched, so a
// continuation that repeats the prompt is left intact.
type DecodedPrefix struct {
	Decoder Decoder
}

func (s DecodedPrefix) Strip(ctx context.Context, raw Raw) (string, error) {
	if s.Decoder == nil {
		return "", fmt.Errorf("decoded prefix: decoder is required")
	}
	prefix, err := safeDecode(ctx, s.Decoder, raw.InputIDs)
	if err != nil {
		return "", fmt.Errorf("decode prompt: %w", err)
	}
	return dropRunes(raw.Text, utf8.RuneCountInString(prefix)), nil
}

// dropRunes removes the first n runes of s. It returns "" when s is shorter.
func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
