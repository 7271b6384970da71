package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/you-not-fish/chi/internal/syntax"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parse.MaxDepth != syntax.DefaultMaxDepth {
		t.Errorf("Parse.MaxDepth = %d, want %d", cfg.Parse.MaxDepth, syntax.DefaultMaxDepth)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Run.Jobs != runtime.GOMAXPROCS(0) {
		t.Errorf("Run.Jobs = %d", cfg.Run.Jobs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "chic.toml", `
[parse]
max_depth = 64

[output]
format = "json"

[log]
level = "debug"

[run]
jobs = 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parse.MaxDepth != 64 {
		t.Errorf("Parse.MaxDepth = %d, want 64", cfg.Parse.MaxDepth)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// unset values fall back to defaults
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Run.Jobs != 3 {
		t.Errorf("Run.Jobs = %d, want 3", cfg.Run.Jobs)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"chic.yaml", "chic.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, name, `
output:
  format: yaml
log:
  format: json
run:
  jobs: 2
`)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Output.Format != FormatYAML || cfg.Log.Format != "json" || cfg.Run.Jobs != 2 {
				t.Errorf("cfg = %+v", cfg)
			}
			if cfg.Parse.MaxDepth != syntax.DefaultMaxDepth {
				t.Errorf("Parse.MaxDepth = %d, want default", cfg.Parse.MaxDepth)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad_extension", "chic.ini", "x=1", "unsupported extension"},
		{"bad_toml", "chic.toml", "[parse\n", "parse config"},
		{"bad_yaml", "chic.yaml", "parse: [", "parse config"},
		{"bad_format", "chic.toml", "[output]\nformat = \"xml\"\n", "output.format"},
		{"bad_level", "chic.yaml", "log:\n  level: loud\n", "log.level"},
		{"bad_jobs", "chic.toml", "[run]\njobs = -1\n", "run.jobs"},
		{"bad_depth", "chic.toml", "[parse]\nmax_depth = -5\n", "parse.max_depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	} else if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("missing file error = %v", err)
	}
}
