// Package config loads server settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath   = "IMAGE_STEGO_CONFIG"
	EnvLogLevel     = "IMAGE_STEGO_LOG_LEVEL"
	EnvEmbedAlpha   = "IMAGE_STEGO_EMBED_ALPHA"
	EnvOutputSuffix = "IMAGE_STEGO_OUTPUT_SUFFIX"

	// LegacyEnvLogLevel is honoured when EnvLogLevel is unset.
	LegacyEnvLogLevel = "IMAGE_MCP_LOG_LEVEL"
)

const (
	defaultLogLevel        = "info"
	defaultOutputSuffix    = "-stego"
	defaultMaxRequestBytes = 64 * 1024 * 1024
	minRequestBytes        = 64 * 1024
)

// Config holds the runtime settings.
type Config struct {
	// LogLevel is a zerolog level name: trace, debug, info, warn, error, disabled.
	LogLevel string `yaml:"log_level"`

	// EmbedAlpha adds the alpha channel to the carrier (4 channels per pixel
	// instead of 3). Encoder and decoder must agree on it.
	EmbedAlpha bool `yaml:"embed_alpha"`

	// OutputSuffix is appended to the input file name when a hide request
	// does not name an output path.
	OutputSuffix string `yaml:"output_suffix"`

	// MaxRequestBytes bounds a single JSON-RPC line on stdin. Base64 payloads
	// travel inside requests, so this caps the binary payload size too.
	MaxRequestBytes int `yaml:"max_request_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:        defaultLogLevel,
		EmbedAlpha:      false,
		OutputSuffix:    defaultOutputSuffix,
		MaxRequestBytes: defaultMaxRequestBytes,
	}
}

// Load reads path (if non-empty), fills defaults for missing keys, applies
// environment overrides and validates the result.
//
// An empty path falls back to $IMAGE_STEGO_CONFIG; when that is empty too only
// defaults and the environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = defaultOutputSuffix
	}
	if cfg.MaxRequestBytes == 0 {
		cfg.MaxRequestBytes = defaultMaxRequestBytes
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		cfg.LogLevel = lvl
	} else if lvl := strings.TrimSpace(os.Getenv(LegacyEnvLogLevel)); lvl != "" {
		cfg.LogLevel = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvEmbedAlpha)); ok {
		cfg.EmbedAlpha = v
	}
	if suffix := strings.TrimSpace(os.Getenv(EnvOutputSuffix)); suffix != "" {
		cfg.OutputSuffix = suffix
	}
}

// Validate reports configuration errors.
func Validate(cfg Config) error {
	var errs []error
	if _, ok := ParseLogLevel(cfg.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level %q is not a known level", cfg.LogLevel))
	}
	if strings.ContainsAny(cfg.OutputSuffix, `/\`) {
		errs = append(errs, fmt.Errorf("output_suffix %q must not contain path separators", cfg.OutputSuffix))
	}
	if cfg.MaxRequestBytes < minRequestBytes {
		errs = append(errs, fmt.Errorf("max_request_bytes must be at least %d", minRequestBytes))
	}
	return errors.Join(errs...)
}

// ParseLogLevel normalises a level name. The second result is false for
// unknown names.
func ParseLogLevel(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return "trace", true
	case "debug":
		return "debug", true
	case "info", "":
		return "info", true
	case "warn", "warning":
		return "warn", true
	case "error":
		return "error", true
	case "disabled", "off", "none":
		return "disabled", true
	default:
		return "", false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
