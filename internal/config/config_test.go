package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithNoFileOrEnv(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Defaults()
	if *cfg != *want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxLogLines != Defaults().MaxLogLines {
		t.Fatalf("expected defaults to survive a missing file, got %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "max_log_lines: 1000\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxLogLines != 1000 {
		t.Errorf("expected file override for MaxLogLines, got %d", cfg.MaxLogLines)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected file override for LogLevel, got %q", cfg.LogLevel)
	}
	if cfg.InputSettleMs != Defaults().InputSettleMs {
		t.Errorf("expected un-overridden field to keep default, got %d", cfg.InputSettleMs)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("max_log_lines: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MCP_MAX_LOG_LINES", "42")
	t.Setenv("MCP_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxLogLines != 42 {
		t.Errorf("expected env to win over file, got %d", cfg.MaxLogLines)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected env LogLevel, got %q", cfg.LogLevel)
	}
}

func TestLoad_FastModeShortensUnoverriddenDefaults(t *testing.T) {
	t.Setenv("MCP_PM_FAST", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InputSettleMs != 150 {
		t.Errorf("expected fast mode to shorten InputSettleMs to 150, got %d", cfg.InputSettleMs)
	}
	if cfg.TickIntervalMs != 20 {
		t.Errorf("expected fast mode to shorten TickIntervalMs to 20, got %d", cfg.TickIntervalMs)
	}
}

func TestLoad_FastModeDoesNotOverrideExplicitSettle(t *testing.T) {
	t.Setenv("MCP_PM_FAST", "true")
	t.Setenv("MCP_INPUT_SETTLE_MS", "900")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InputSettleMs != 900 {
		t.Errorf("expected explicit env override to survive fast mode, got %d", cfg.InputSettleMs)
	}
}

func TestDefaultConfigPath_EndsInExpectedSuffix(t *testing.T) {
	path := DefaultConfigPath()
	if path == "" {
		t.Skip("no home directory available in this environment")
	}
	suffix := filepath.Join(".config", "mcpshell", "config.yaml")
	if filepath.Base(filepath.Dir(path)) != "mcpshell" || filepath.Base(path) != "config.yaml" {
		t.Errorf("expected path to end with %s, got %s", suffix, path)
	}
}
