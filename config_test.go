package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
)

func TestParseConfig(t *testing.T) {

	src := `
prompt: "> "
input_prompt: "? "
strict_end: true
missing_line: fail
stats: true
trace:
  level: info
  vars: true
`

	cfg, err := parseConfig(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	want := &config{
		Prompt:      "> ",
		InputPrompt: "? ",
		StrictEnd:   true,
		MissingLine: missingLineFail,
		Stats:       true,
		Trace:       traceConfig{Level: "info", Vars: true},
	}

	if *cfg != *want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestParseConfigDefaults(t *testing.T) {

	for _, src := range []string{"", "stats: false\n"} {
		cfg, err := parseConfig(strings.NewReader(src))
		if err != nil {
			t.Fatalf("parseConfig(%q): %v", src, err)
		}

		if *cfg != *defaultConfig() {
			t.Errorf("parseConfig(%q) = %+v, want defaults", src, cfg)
		}
	}
}

func TestParseConfigErrors(t *testing.T) {

	for _, src := range []string{
		"colour: blue\n",
		"missing_line: ignore\n",
		"trace:\n  level: loud\n",
		"trace:\n  exec: sometimes\n",
		"stats: [1, 2]\n",
	} {
		if _, err := parseConfig(strings.NewReader(src)); err == nil {
			t.Errorf("parseConfig(%q) succeeded", src)
		}
	}
}

func TestLoadConfig(t *testing.T) {

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig without a file: %v", err)
	}

	if *cfg != *defaultConfig() {
		t.Errorf("config = %+v, want defaults", cfg)
	}

	if _, err := loadConfig(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Errorf("loading a missing explicit file succeeded")
	}

	if err := os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("prompt: \"] \"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = loadConfig("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Prompt != "] " {
		t.Errorf("prompt = %q, want %q", cfg.Prompt, "] ")
	}
}

func TestTraceLevel(t *testing.T) {

	tests := []struct {
		trace traceConfig
		want  tracing.TraceLevel
	}{
		{traceConfig{Level: "error"}, tracing.LevelError},
		{traceConfig{Level: "DEBUG"}, tracing.LevelDebug},
		{traceConfig{Level: "error", Vars: true}, tracing.LevelInfo},
		{traceConfig{Level: "info", Exec: true}, tracing.LevelDebug},
		{traceConfig{Level: "debug", Vars: true}, tracing.LevelDebug},
	}

	for _, tt := range tests {
		cfg := defaultConfig()
		cfg.Trace = tt.trace

		if got := cfg.traceLevel(); got != tt.want {
			t.Errorf("traceLevel(%+v) = %v, want %v", tt.trace, got, tt.want)
		}
	}
}
