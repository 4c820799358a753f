package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/interviewer/internal/interview"
)

func promptCmd() *cli.Command {
	var problem, code, thoughts string

	return &cli.Command{
		Name:  "prompt",
		Usage: "Print the interviewer prompt without generating",
		Flags: []cli.Flag{
			templateFlag(),
			&cli.StringFlag{Name: "problem", Usage: "problem description", Destination: &problem},
			&cli.StringFlag{Name: "code", Usage: "candidate's current code", Destination: &code},
			&cli.StringFlag{Name: "thoughts", Usage: "candidate's verbalized thoughts", Destination: &thoughts},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if fileConfig.Template != "" && !cmd.IsSet("template") {
				templateArg = fileConfig.Template
			}
			tmpl, err := interview.ParseTemplate(templateArg)
			if err != nil {
				return err
			}
			vals, err := readFields(os.Stdin, problem, code, thoughts)
			if err != nil {
				return err
			}
			ic := interview.Context{Problem: vals[0], CandidateCode: vals[1], CandidateThoughts: vals[2]}
			_, err = fmt.Fprint(stdout, tmpl.Render(ic))
			return err
		},
	}
}
