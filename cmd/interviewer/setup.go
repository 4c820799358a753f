package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/interviewer/internal/backend"
	"github.com/samcharles93/interviewer/internal/logger"
)

// setup loads .env and the config file, then puts the configured logger in
// the context every subcommand receives.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := loadDotEnv(envFile, cmd.IsSet("env-file")); err != nil {
		return ctx, err
	}
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return ctx, err
	}
	fileConfig = cfg
	applyLoggingConfig(cmd, cfg)

	level := slog.LevelDebug
	if !debug {
		if level, err = logger.ParseLevel(logLevel); err != nil {
			return ctx, err
		}
	}
	log, err := logger.Setup(os.Stderr, logger.Options{
		Format: logFormat,
		Level:  level,
		Color:  stderrIsTTY(),
	})
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

// credentialEnv lists the variables consulted, in order, when --api-key is
// empty.
var credentialEnv = map[string][]string{
	backend.HF:       {"HF_TOKEN", "HUGGING_FACE_HUB_TOKEN"},
	backend.Gemini:   {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	backend.LlamaCPP: {"LLAMA_API_KEY"},
}

// backendConfig resolves the backend flags, config file and environment into
// a backend.Config.
func backendConfig(cmd *cli.Command) (backend.Config, error) {
	if err := applyBackendConfig(cmd, fileConfig); err != nil {
		return backend.Config{}, err
	}
	name, err := backend.Normalize(backendName)
	if err != nil {
		return backend.Config{}, err
	}
	key := apiKey
	for _, env := range credentialEnv[name] {
		if key != "" {
			break
		}
		key = strings.TrimSpace(os.Getenv(env))
	}
	ep := endpoint
	if ep == "" {
		ep = os.Getenv("INTERVIEWER_ENDPOINT")
	}
	return backend.Config{
		Name:     name,
		Endpoint: ep,
		APIKey:   key,
		Model:    modelName,
		Timeout:  timeout,
	}, nil
}
