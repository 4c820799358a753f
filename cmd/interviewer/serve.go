package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/interviewer/internal/api"
	"github.com/samcharles93/interviewer/internal/backend"
	"github.com/samcharles93/interviewer/internal/generation"
	"github.com/samcharles93/interviewer/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve POST /generate over HTTP",
		Flags: append(backendFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "0.0.0.0:8000",
				Sources:     cli.EnvVars("INTERVIEWER_ADDR"),
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, fileConfig, &addr)

			cfg, err := backendConfig(cmd)
			if err != nil {
				return err
			}
			// The endpoint only ever sees continuation-only output.
			gen, err := backend.Open(ctx, cfg, backend.LoaderPipeline)
			if err != nil {
				return err
			}
			log.Info("backend ready", "backend", cfg.Name, "loader", gen.Loader())

			e := newEcho(gen, log)
			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

func newEcho(gen generation.Generator, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(api.CORSConfig()))
	api.NewServer(gen, log).Register(e)
	return e
}
