// Package backend resolves a backend name and loader into a Generator.
package backend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samcharles93/interviewer/internal/backend/gemini"
	"github.com/samcharles93/interviewer/internal/backend/hf"
	"github.com/samcharles93/interviewer/internal/backend/llamacpp"
	"github.com/samcharles93/interviewer/internal/backend/lorem"
	"github.com/samcharles93/interviewer/internal/generation"
)

const (
	HF       = "hf"
	LlamaCPP = "llamacpp"
	Gemini   = "gemini"
	Lorem    = "lorem"
)

// Loader selects the capability shape used to drive a backend.
type Loader string

const (
	LoaderPipeline Loader = "pipeline"
	LoaderModel    Loader = "model"
)

var ErrUnsupported = errors.New("unsupported backend")

var names = []string{HF, LlamaCPP, Gemini, Lorem}

var loaders = map[string][]Loader{
	HF:       {LoaderPipeline},
	LlamaCPP: {LoaderPipeline, LoaderModel},
	Gemini:   {LoaderPipeline},
	Lorem:    {LoaderPipeline, LoaderModel},
}

func Normalize(name string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(name))
	switch backend {
	case "":
		return HF, nil
	case "llama.cpp", "llama-cpp":
		return LlamaCPP, nil
	case "huggingface":
		return HF, nil
	}
	if slices.Contains(names, backend) {
		return backend, nil
	}
	return "", fmt.Errorf("unknown backend %q (expected %s)", backend, strings.Join(names, ", "))
}

func ParseLoader(s string) (Loader, error) {
	switch l := Loader(strings.ToLower(strings.TrimSpace(s))); l {
	case LoaderPipeline, LoaderModel:
		return l, nil
	case "":
		return "", errors.New("loader is required (expected pipeline or model)")
	default:
		return "", fmt.Errorf("unknown loader %q (expected pipeline or model)", s)
	}
}

func Names() []string {
	return slices.Clone(names)
}

// Loaders lists the loaders a normalized backend name supports.
func Loaders(name string) []Loader {
	return slices.Clone(loaders[name])
}

func Supports(name string, l Loader) bool {
	return slices.Contains(loaders[name], l)
}

// Available returns a comma-separated list of backends that support l.
func Available(l Loader) string {
	var entries []string
	for _, n := range names {
		if Supports(n, l) {
			entries = append(entries, n)
		}
	}
	return strings.Join(entries, ",")
}

type Config struct {
	Name     string
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Open connects to the configured backend and wraps it for loader l.
func Open(ctx context.Context, cfg Config, l Loader) (*generation.Adapter, error) {
	name, err := Normalize(cfg.Name)
	if err != nil {
		return nil, err
	}
	if !Supports(name, l) {
		return nil, fmt.Errorf("%w: %s does not support the %s loader (available: %s)", ErrUnsupported, name, l, Available(l))
	}

	switch name {
	case HF:
		if cfg.Endpoint == "" {
			return nil, errors.New("hf: endpoint is required")
		}
		c, err := hf.New(cfg.Endpoint, cfg.Timeout, hf.WithToken(cfg.APIKey))
		if err != nil {
			return nil, err
		}
		return generation.NewPipelineAdapter(c), nil
	case LlamaCPP:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = llamacpp.DefaultEndpoint
		}
		c, err := llamacpp.New(endpoint, cfg.APIKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		if l == LoaderModel {
			return generation.NewModelAdapter(c), nil
		}
		return generation.NewPipelineAdapter(c), nil
	case Gemini:
		c, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.Endpoint,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return generation.NewPipelineAdapter(c), nil
	case Lorem:
		b := lorem.New()
		if l == LoaderModel {
			return generation.NewModelAdapter(b), nil
		}
		return generation.NewPipelineAdapter(b), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
}
