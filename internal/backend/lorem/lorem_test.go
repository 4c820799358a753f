package lorem

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/samcharles93/interviewer/internal/generation"
	"github.com/samcharles93/interviewer/internal/interview"
)

func standardPrompt() string {
	return interview.BuildPrompt("Two Sum: return indices of two numbers adding to target.", "def two_sum(nums, target):\n    pass", "I think a hash map works.")
}

func TestGenerateKeepsPromptIDs(t *testing.T) {
	t.Parallel()

	b := New()
	ctx := context.Background()
	prompt := standardPrompt()
	ids, _ := b.Encode(ctx, prompt)

	out, err := b.Generate(ctx, ids, generation.ServeParams(50, 0.7))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(out) <= len(ids) || len(out) > len(ids)+50 {
		t.Fatalf("Generate() returned %d ids for a %d id prompt and budget 50", len(out), len(ids))
	}
	text, _ := b.Decode(ctx, out)
	if !strings.HasPrefix(text, prompt) {
		t.Fatalf("decoded output does not start with the prompt: %q", text)
	}
}

func TestModelAdapterReturnsContinuationOnly(t *testing.T) {
	t.Parallel()

	prompt := standardPrompt()
	res, err := generation.NewModelAdapter(New()).Generate(context.Background(), prompt, generation.ServeParams(80, 0.7))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Text == "" || strings.Contains(res.Text, "interviewer") {
		t.Fatalf("unexpected continuation %q", res.Text)
	}
}

func TestBudgets(t *testing.T) {
	t.Parallel()

	b := New()
	ctx := context.Background()

	params := generation.InteractiveParams()
	params.MaxLength = 4
	got, err := b.Complete(ctx, "a b c d", params)
	if err != nil || got != "" {
		t.Fatalf("Complete() at the length limit = %q, %v", got, err)
	}

	got, err = b.Complete(ctx, "abc", generation.InteractiveParams())
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if n := len(strings.Fields(got)); n < maxWords {
		t.Fatalf("interactive completion has %d words, want at least %d", n, maxWords)
	}
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Complete(ctx, "x", generation.ServeParams(5, 0.7)); err == nil {
		t.Fatal("expected context error")
	}
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	b := New()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.Complete(context.Background(), "p", generation.ServeParams(10, 0.7)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	b := New()
	ctx := context.Background()
	for _, text := range []string{standardPrompt(), "  leading\tand trailing \n", "", "naïve café  "} {
		ids, _ := b.Encode(ctx, text)
		got, err := b.Decode(ctx, ids)
		if err != nil || got != text {
			t.Fatalf("Decode(Encode(%q)) = %q, %v", text, got, err)
		}
	}
	if _, err := b.Decode(ctx, []int{1 << 20}); err == nil {
		t.Fatal("expected error for an unknown id")
	}
}

func TestStandardPromptFitsInteractiveLength(t *testing.T) {
	t.Parallel()

	prompt := standardPrompt()
	ids, _ := New().Encode(context.Background(), prompt)
	if len(ids) >= generation.InteractiveMaxLength {
		t.Fatalf("standard prompt is %d tokens, leaving no room under max_length %d", len(ids), generation.InteractiveMaxLength)
	}

	adapters := map[string]*generation.Adapter{
		"pipeline": generation.NewPipelineAdapter(New()),
		"model":    generation.NewModelAdapter(New()),
	}
	for name, a := range adapters {
		res, err := a.Generate(context.Background(), prompt, generation.InteractiveParams())
		if err != nil {
			t.Fatalf("%s: Generate() error = %v", name, err)
		}
		if res.Text == "" || strings.Contains(res.Text, "INTERVIEW STATUS") {
			t.Fatalf("%s: unexpected reply %q", name, res.Text)
		}
	}
}
