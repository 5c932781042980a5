// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the engine settings that are not wiring.
//
//	max_call_depth: 256
//	log_level: info
//	metrics_namespace: vc
//	tracer_name: code.hybscloud.com/vc/engine
type Config struct {
	// MaxCallDepth bounds how deeply resolutions may nest.
	MaxCallDepth int `yaml:"max_call_depth" validate:"min=1,max=65536"`

	// LogLevel is used when no logger is supplied. Empty discards logs.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `yaml:"metrics_namespace" validate:"omitempty,alphanum"`

	// TracerName names the OpenTelemetry tracer.
	TracerName string `yaml:"tracer_name"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth:     256,
		MetricsNamespace: "vc",
		TracerName:       "code.hybscloud.com/vc/engine",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: read config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) logger() *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "":
		return slog.New(slog.DiscardHandler)
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
