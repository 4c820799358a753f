// Package lorem is an offline backend that answers with lorem ipsum. It
// implements both capability shapes so either loader can run without a
// model server.
package lorem

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	loremgen "github.com/bozaro/golorem"

	"github.com/samcharles93/interviewer/internal/generation"
)

const (
	defaultWords = 40
	maxWords     = 120
)

// wordPattern splits text into words carrying their leading whitespace, plus
// any trailing whitespace run, so joining the pieces gives the text back.
var wordPattern = regexp.MustCompile(`\s*\S+|\s+`)

// Backend tokenizes one id per word. The vocabulary grows as new words are
// seen, and decoding the prompt ids gives back the prompt exactly.
type Backend struct {
	mu    sync.Mutex
	gen   *loremgen.Lorem
	ids   map[string]int
	vocab []string
}

func New() *Backend {
	return &Backend{gen: loremgen.New(), ids: make(map[string]int)}
}

func (b *Backend) words(n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sb strings.Builder
	count := 0
	for count < n {
		sentence := b.gen.Sentence(5, 15)
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(sentence)
		count += len(strings.Fields(sentence))
	}
	return sb.String()
}

func wordTarget(budget int) int {
	if budget < 0 {
		return defaultWords
	}
	return min(budget, maxWords)
}

func (b *Backend) tokenize(text string) []int {
	pieces := wordPattern.FindAllString(text, -1)
	ids := make([]int, len(pieces))

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range pieces {
		id, ok := b.ids[p]
		if !ok {
			id = len(b.vocab)
			b.ids[p] = id
			b.vocab = append(b.vocab, p)
		}
		ids[i] = id
	}
	return ids
}

func (b *Backend) Complete(ctx context.Context, prompt string, p generation.Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	budget := p.ResolveBudget(ctx, len(wordPattern.FindAllStringIndex(prompt, -1)))
	if budget == 0 {
		return "", nil
	}
	return b.words(wordTarget(budget)), nil
}

func (b *Backend) Encode(ctx context.Context, text string) ([]int, error) {
	return b.tokenize(text), nil
}

func (b *Backend) Decode(ctx context.Context, ids []int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sb strings.Builder
	for _, id := range ids {
		if id < 0 || id >= len(b.vocab) {
			return "", fmt.Errorf("lorem: unknown token id %d", id)
		}
		sb.WriteString(b.vocab[id])
	}
	return sb.String(), nil
}

// Generate appends lorem words to ids, at most one per budgeted token.
func (b *Backend) Generate(ctx context.Context, ids []int, p generation.Params) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := append([]int(nil), ids...)
	budget := p.ResolveBudget(ctx, len(ids))
	if budget == 0 {
		return out, nil
	}
	next := b.tokenize(" " + b.words(wordTarget(budget)))
	if budget > 0 && len(next) > budget {
		next = next[:budget]
	}
	return append(out, next...), nil
}
