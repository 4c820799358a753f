package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakePipeline struct {
	text  string
	err   error
	panic string
	got   Params
}

func (p *fakePipeline) Complete(_ context.Context, _ string, params Params) (string, error) {
	p.got = params
	if p.panic != "" {
		panic(p.panic)
	}
	return p.text, p.err
}

// runeModel tokenizes one id per rune and appends the runes of cont.
// lossy replaces tabs on decode to mimic a tokenizer whose decode does not
// reproduce the input byte for byte.
type runeModel struct {
	cont        string
	lossy       bool
	generateErr error
	panicDecode bool
}

func (m runeModel) Encode(_ context.Context, text string) ([]int, error) {
	ids := make([]int, 0, len(text))
	for _, r := range text {
		ids = append(ids, int(r))
	}
	return ids, nil
}

func (m runeModel) Decode(_ context.Context, ids []int) (string, error) {
	if m.panicDecode {
		panic("decode boom")
	}
	var b strings.Builder
	for _, id := range ids {
		r := rune(id)
		if m.lossy && r == '\t' {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (m runeModel) Generate(ctx context.Context, ids []int, _ Params) ([]int, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	cont, _ := m.Encode(ctx, m.cont)
	return append(append([]int(nil), ids...), cont...), nil
}

func TestPipelineAdapterTrimsContinuation(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		raw, want string
	}{
		{"  hello  ", "hello"},
		{"\n\tWhat is your approach?\n", "What is your approach?"},
		{"keep  internal\n\nspacing", "keep  internal\n\nspacing"},
		{"   ", ""},
		{"", ""},
	} {
		p := &fakePipeline{text: tc.raw}
		got, err := NewPipelineAdapter(p).Generate(context.Background(), "prompt", ServeParams(200, 0.7))
		if err != nil {
			t.Fatalf("Generate(%q) error = %v", tc.raw, err)
		}
		if got.Text != tc.want {
			t.Fatalf("Generate(%q) = %q, want %q", tc.raw, got.Text, tc.want)
		}
	}
}

func TestPipelineAdapterForwardsParams(t *testing.T) {
	t.Parallel()

	p := &fakePipeline{text: "ok"}
	params := ServeParams(64, 1.2)
	if _, err := NewPipelineAdapter(p).Generate(context.Background(), "x", params); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if p.got != params {
		t.Fatalf("capability got %+v, want %+v", p.got, params)
	}
}

func TestModelAdapterStripsDecodedPrompt(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		prompt string
		cont   string
		lossy  bool
		want   string
	}{
		{"simple", "2+2=", " 4 ", false, "4"},
		{"empty continuation", "prompt text", "", false, ""},
		{"whitespace continuation", "prompt", " \n\t ", false, ""},
		{"continuation repeats prompt", "abc", "abc", false, "abc"},
		{"unicode", "héllo ✓", " wörld", false, "wörld"},
		{"lossy decode", "a\tb", "\tnext\tline", true, "next line"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := runeModel{cont: tc.cont, lossy: tc.lossy}
			got, err := NewModelAdapter(m).Generate(context.Background(), tc.prompt, InteractiveParams())
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got.Text != tc.want {
				t.Fatalf("Generate() = %q, want %q", got.Text, tc.want)
			}
		})
	}
}

func TestDecodedPrefixShortOutput(t *testing.T) {
	t.Parallel()

	s := DecodedPrefix{Decoder: runeModel{}}
	got, err := s.Strip(context.Background(), Raw{Text: "ab", InputIDs: []int{'a', 'b', 'c', 'd'}})
	if err != nil {
		t.Fatalf("Strip() error = %v", err)
	}
	if got != "" {
		t.Fatalf("Strip() = %q, want empty", got)
	}
}

func TestAdapterPropagatesCapabilityErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("CUDA out of memory")
	_, err := NewPipelineAdapter(&fakePipeline{err: boom}).Generate(context.Background(), "x", ServeParams(10, 0.7))
	if !errors.Is(err, boom) {
		t.Fatalf("pipeline error = %v, want %v", err, boom)
	}

	_, err = NewModelAdapter(runeModel{generateErr: boom}).Generate(context.Background(), "x", InteractiveParams())
	if !errors.Is(err, boom) {
		t.Fatalf("model error = %v, want %v", err, boom)
	}
}

func TestAdapterConvertsPanics(t *testing.T) {
	t.Parallel()

	_, err := NewPipelineAdapter(&fakePipeline{panic: "kaboom"}).Generate(context.Background(), "x", ServeParams(10, 0.7))
	if err == nil || !strings.Contains(err.Error(), "panic in Complete: kaboom") {
		t.Fatalf("expected converted panic, got %v", err)
	}

	_, err = NewModelAdapter(runeModel{panicDecode: true}).Generate(context.Background(), "x", InteractiveParams())
	if err == nil || !strings.Contains(err.Error(), "panic in Decode: decode boom") {
		t.Fatalf("expected converted decode panic, got %v", err)
	}
}

func TestAdapterRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	p := &fakePipeline{text: "never"}
	_, err := NewPipelineAdapter(p).Generate(context.Background(), "x", ServeParams(10, 0))
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestAdapterHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipelineAdapter(&fakePipeline{text: "x"}).Generate(ctx, "x", ServeParams(10, 0.7))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithEchoStrategy(t *testing.T) {
	t.Parallel()

	a := NewModelAdapter(runeModel{cont: " tail"})
	raw := a.WithEchoStrategy(Continuation{})
	got, err := raw.Generate(context.Background(), "head", InteractiveParams())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Text != "head tail" {
		t.Fatalf("Generate() = %q, want full sequence", got.Text)
	}
	if a.Loader() != "model" || NewPipelineAdapter(&fakePipeline{}).Loader() != "pipeline" {
		t.Fatal("unexpected loader names")
	}
}
