package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/interviewer/internal/backend"
)

func backendsCmd() *cli.Command {
	return &cli.Command{
		Name:  "backends",
		Usage: "List generation backends and the loaders each supports",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return listBackends(os.Stdout)
		},
	}
}

func listBackends(w io.Writer) error {
	for _, name := range backend.Names() {
		loaders := backend.Loaders(name)
		parts := make([]string, len(loaders))
		for i, l := range loaders {
			parts[i] = string(l)
		}
		if _, err := fmt.Fprintf(w, "%-9s %s\n", name, strings.Join(parts, ",")); err != nil {
			return err
		}
	}
	return nil
}
