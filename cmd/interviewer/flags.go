package main

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/interviewer/internal/backend/transport"
)

var (
	backendName string
	endpoint    string
	apiKey      string
	modelName   string
	timeout     time.Duration
	templateArg string
	configFile  string
	envFile     string
	logLevel    string
	logFormat   string
	debug       bool
)

func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend",
			Aliases:     []string{"b"},
			Usage:       "generation backend (hf, llamacpp, gemini, lorem)",
			Value:       "hf",
			Sources:     cli.EnvVars("INTERVIEWER_BACKEND"),
			Destination: &backendName,
		},
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "backend base URL",
			Sources:     cli.EnvVars("INTERVIEWER_ENDPOINT"),
			Destination: &endpoint,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "backend credential (defaults to HF_TOKEN, GEMINI_API_KEY or LLAMA_API_KEY)",
			Sources:     cli.EnvVars("INTERVIEWER_API_KEY"),
			Destination: &apiKey,
		},
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "model name for backends that host several",
			Sources:     cli.EnvVars("INTERVIEWER_MODEL"),
			Destination: &modelName,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "per-request backend timeout",
			Value:       transport.DefaultTimeout,
			Destination: &timeout,
		},
	}
}

func templateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "template",
		Usage:       "interviewer prompt template (standard, concise)",
		Value:       "standard",
		Destination: &templateArg,
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "config file (.yaml or .toml); defaults to the user config dir",
			Sources:     cli.EnvVars("INTERVIEWER_CONFIG"),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "dotenv file to load before reading the environment",
			Value:       ".env",
			Destination: &envFile,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
