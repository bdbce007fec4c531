package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"gopkg.in/yaml.v3"
)

//
// Session configuration.  Everything has a default, so a missing
// file is the same as an empty one
//

type traceConfig struct {
	Level string `yaml:"level"`
	Exec  bool   `yaml:"exec"`
	Vars  bool   `yaml:"vars"`
	Dump  bool   `yaml:"dump"`
}

type config struct {
	Prompt      string      `yaml:"prompt"`
	InputPrompt string      `yaml:"input_prompt"`
	StrictEnd   bool        `yaml:"strict_end"`
	MissingLine string      `yaml:"missing_line"`
	HistoryFile string      `yaml:"history_file"`
	Stats       bool        `yaml:"stats"`
	Trace       traceConfig `yaml:"trace"`
}

func defaultConfig() *config {

	return &config{
		InputPrompt: defaultInputPrompt,
		MissingLine: missingLineContinue,
		Trace:       traceConfig{Level: "error"},
	}
}

//
// Load the configuration.  An explicit path must exist; the default
// one in $HOME is optional
//

func loadConfig(path string) (*config, error) {

	explicit := path != ""

	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return defaultConfig(), nil
		}

		path = filepath.Join(home, defaultConfigFile)
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}

		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}

	defer file.Close()

	cfg, err := parseConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

func parseConfig(r io.Reader) (*config, error) {

	cfg := defaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *config) validate() error {

	switch cfg.MissingLine {
	case missingLineContinue, missingLineFail:
	default:
		return fmt.Errorf("missing_line must be %q or %q, not %q",
			missingLineContinue, missingLineFail, cfg.MissingLine)
	}

	switch strings.ToLower(cfg.Trace.Level) {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("trace.level must be error, info or debug, not %q", cfg.Trace.Level)
	}

	return nil
}

//
// The level the tracer actually runs at.  Asking for exec or vars
// tracing raises it far enough for those messages to show up
//

func (cfg *config) traceLevel() tracing.TraceLevel {

	level := tracing.TraceLevelFromString(cfg.Trace.Level)

	if cfg.Trace.Exec && level < tracing.LevelDebug {
		level = tracing.LevelDebug
	}

	if cfg.Trace.Vars && level < tracing.LevelInfo {
		level = tracing.LevelInfo
	}

	return level
}

func newTracer(cfg *config) tracing.Trace {

	tracer := gologadapter.New()

	tracer.SetTraceLevel(cfg.traceLevel())

	return tracer
}
