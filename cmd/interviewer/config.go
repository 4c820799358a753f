package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the optional config file
// ($XDG_CONFIG_HOME/interviewer/config.yaml or config.toml). Pointer fields
// tell "not set" apart from zero values.
type Config struct {
	Backend  string `yaml:"backend" toml:"backend"`
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
	Model    string `yaml:"model" toml:"model"`
	Timeout  string `yaml:"timeout" toml:"timeout"`
	Template string `yaml:"template" toml:"template"`

	// Interactive
	Loader    string `yaml:"loader" toml:"loader"`
	MaxLength *int   `yaml:"max_length" toml:"max_length"`

	// Output
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address" toml:"server_address"`
}

// fileConfig is loaded by the root command before any subcommand runs.
var fileConfig Config

func configPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(dir, "interviewer")
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
		filepath.Join(base, "config.toml"),
	}
}

// LoadConfig reads path, or the first default location that exists. A
// missing default file yields a zero Config; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	if path != "" {
		return readConfig(path)
	}
	for _, p := range configPaths() {
		cfg, err := readConfig(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Config{}, nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension (expected .yaml or .toml)", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing default file is not an error.
func loadDotEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyLoggingConfig applies config file defaults to the root flags.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyBackendConfig applies config file defaults to the backend flags.
func applyBackendConfig(c *cli.Command, cfg Config) error {
	if cfg.Backend != "" && !c.IsSet("backend") {
		backendName = cfg.Backend
	}
	if cfg.Endpoint != "" && !c.IsSet("endpoint") {
		endpoint = cfg.Endpoint
	}
	if cfg.Model != "" && !c.IsSet("model") {
		modelName = cfg.Model
	}
	if cfg.Template != "" && !c.IsSet("template") {
		templateArg = cfg.Template
	}
	if cfg.Timeout != "" && !c.IsSet("timeout") {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		timeout = d
	}
	return nil
}

// applyInterviewConfig applies config file defaults to interview flags.
func applyInterviewConfig(c *cli.Command, cfg Config, loader *string, maxLength *int) {
	if cfg.Loader != "" && !c.IsSet("loader") {
		*loader = cfg.Loader
	}
	if cfg.MaxLength != nil && !c.IsSet("max-length") {
		*maxLength = *cfg.MaxLength
	}
}

// applyServeConfig applies config file defaults to serve flags.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
