package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/interviewer/internal/backend"
	"github.com/samcharles93/interviewer/internal/form"
	"github.com/samcharles93/interviewer/internal/generation"
	"github.com/samcharles93/interviewer/internal/interview"
	"github.com/samcharles93/interviewer/internal/logger"
)

func interviewCmd() *cli.Command {
	var (
		loaderArg string
		maxLength int
		problem   string
		code      string
		thoughts  string
	)

	return &cli.Command{
		Name:  "interview",
		Usage: "Ask the interviewer for its next response",
		Description: "With a terminal attached and no --problem/--code/--thoughts, opens an interactive form.\n" +
			"Otherwise prints one response. Field values starting with @ are read from a file (@- is stdin).",
		Flags: append(backendFlags(),
			templateFlag(),
			&cli.StringFlag{
				Name:        "loader",
				Aliases:     []string{"l"},
				Usage:       "how the model is driven: pipeline (continuation only) or model (full sequence, prompt stripped)",
				Sources:     cli.EnvVars("INTERVIEWER_LOADER"),
				Destination: &loaderArg,
			},
			&cli.IntFlag{
				Name:        "max-length",
				Usage:       "maximum prompt plus response length in tokens",
				Value:       generation.InteractiveMaxLength,
				Destination: &maxLength,
			},
			&cli.StringFlag{Name: "problem", Usage: "problem description", Destination: &problem},
			&cli.StringFlag{Name: "code", Usage: "candidate's current code", Destination: &code},
			&cli.StringFlag{Name: "thoughts", Usage: "candidate's verbalized thoughts", Destination: &thoughts},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyInterviewConfig(cmd, fileConfig, &loaderArg, &maxLength)

			loader, err := backend.ParseLoader(loaderArg)
			if err != nil {
				return fmt.Errorf("--loader: %w", err)
			}
			cfg, err := backendConfig(cmd)
			if err != nil {
				return err
			}
			tmpl, err := interview.ParseTemplate(templateArg)
			if err != nil {
				return err
			}
			params := generation.InteractiveParams()
			params.MaxLength = maxLength
			if err := params.Validate(); err != nil {
				return err
			}

			gen, err := backend.Open(ctx, cfg, loader)
			if err != nil {
				return err
			}
			log.Debug("backend ready", "backend", cfg.Name, "loader", gen.Loader(), "template", tmpl.Name())

			oneShot := cmd.IsSet("problem") || cmd.IsSet("code") || cmd.IsSet("thoughts")
			if !oneShot && stdinIsTTY() {
				return form.Run(ctx, gen, form.Options{
					Template: tmpl,
					Params:   &params,
					Loader:   gen.Loader(),
				})
			}

			vals, err := readFields(os.Stdin, problem, code, thoughts)
			if err != nil {
				return err
			}
			ic := interview.Context{Problem: vals[0], CandidateCode: vals[1], CandidateThoughts: vals[2]}
			return respond(ctx, stdout, gen, tmpl.Render(ic), params)
		},
	}
}

// respond prints one interviewer response. Generation errors are returned
// unchanged.
func respond(ctx context.Context, w io.Writer, gen generation.Generator, prompt string, params generation.Params) error {
	res, err := gen.Generate(ctx, prompt, params)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, res.Text)
	return err
}

// readFields resolves each value with readValue. Only one value may read
// stdin.
func readFields(stdin io.Reader, values ...string) ([]string, error) {
	out := make([]string, len(values))
	fromStdin := false
	for i, v := range values {
		if v == "@-" {
			if fromStdin {
				return nil, errors.New("only one field can be read from stdin (@-)")
			}
			fromStdin = true
		}
		var err error
		if out[i], err = readValue(v, stdin); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// readValue resolves "@path" to the file's contents and "@-" to stdin. Other
// values are returned as given; "@@" escapes a leading @.
func readValue(v string, stdin io.Reader) (string, error) {
	switch {
	case strings.HasPrefix(v, "@@"):
		return v[1:], nil
	case v == "@-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	case strings.HasPrefix(v, "@"):
		path := v[1:]
		if path == "" {
			return "", errors.New("empty file name after @")
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return v, nil
	}
}
