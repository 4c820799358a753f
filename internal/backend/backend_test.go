package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/samcharles93/interviewer/internal/generation"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: HF},
		{in: " HF ", want: HF},
		{in: "llama.cpp", want: LlamaCPP},
		{in: "Gemini", want: Gemini},
		{in: "lorem", want: Lorem},
		{in: "openai", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLoader(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Loader{"pipeline": LoaderPipeline, "MODEL": LoaderModel} {
		got, err := ParseLoader(in)
		if err != nil || got != want {
			t.Fatalf("ParseLoader(%q) = %q, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "auto"} {
		if _, err := ParseLoader(in); err == nil {
			t.Fatalf("ParseLoader(%q) should fail", in)
		}
	}
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	if got := Available(LoaderPipeline); got != "hf,llamacpp,gemini,lorem" {
		t.Fatalf("Available(pipeline) = %q", got)
	}
	if got := Available(LoaderModel); got != "llamacpp,lorem" {
		t.Fatalf("Available(model) = %q", got)
	}
	if diff := cmp.Diff([]Loader{LoaderPipeline}, Loaders(HF)); diff != "" {
		t.Fatalf("Loaders(hf) mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenUnsupported(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{Name: HF, Endpoint: "http://localhost"}, LoaderModel)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Open(hf, model) error = %v, want ErrUnsupported", err)
	}
	if _, err := Open(context.Background(), Config{Name: HF}, LoaderPipeline); err == nil {
		t.Fatal("Open(hf) without endpoint should fail")
	}
}

func TestOpenLorem(t *testing.T) {
	t.Parallel()

	for _, l := range []Loader{LoaderPipeline, LoaderModel} {
		gen, err := Open(context.Background(), Config{Name: Lorem}, l)
		if err != nil {
			t.Fatalf("Open(lorem, %s) error = %v", l, err)
		}
		if gen.Loader() != string(l) {
			t.Fatalf("Loader() = %q, want %q", gen.Loader(), l)
		}
		res, err := gen.Generate(context.Background(), "prompt", generation.ServeParams(30, 0.7))
		if err != nil || res.Text == "" {
			t.Fatalf("Generate() = %q, %v", res.Text, err)
		}
	}
}
