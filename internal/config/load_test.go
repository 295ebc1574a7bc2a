package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.UseManifestBuild || cfg.UseEntryPointBuild {
		t.Fatalf("broader strategies must default to off: %+v", cfg)
	}
	if cfg.EntryPointOverride != "" {
		t.Fatalf("override must default to empty")
	}
	if cfg.RustcPath != "rustc" || cfg.CargoPath != "cargo" {
		t.Fatalf("toolchain paths must default to PATH lookups: %+v", cfg)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, path, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("absence of an options file must not be an error: %v", err)
	}
	if path != "" {
		t.Fatalf("no file applied, path = %q", path)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadDiscoversUpward(t *testing.T) {
	root := t.TempDir()
	optionsPath := filepath.Join(root, FileName)
	content := `
use-manifest-build = true
entry-point-override = "src/main.rs"
`
	if err := os.WriteFile(optionsPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	start := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(start, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, path, err := Load(start, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != optionsPath {
		t.Fatalf("applied %q, want %q", path, optionsPath)
	}
	if !cfg.UseManifestBuild {
		t.Fatalf("use-manifest-build not applied")
	}
	if cfg.EntryPointOverride != "src/main.rs" {
		t.Fatalf("EntryPointOverride = %q", cfg.EntryPointOverride)
	}
	// Незатронутые ключи остаются на дефолтах.
	if cfg.UseEntryPointBuild {
		t.Fatalf("use-entry-point-build must stay off")
	}
	if cfg.RustcPath != "rustc" {
		t.Fatalf("RustcPath = %q, want default", cfg.RustcPath)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	optionsPath := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(optionsPath, []byte("use-entry-point-build = true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, path, err := Load(t.TempDir(), optionsPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != optionsPath || !cfg.UseEntryPointBuild {
		t.Fatalf("explicit options file not applied: path=%q cfg=%+v", path, cfg)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	if _, _, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("explicitly named options file must exist")
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	optionsPath := filepath.Join(dir, FileName)
	content := `
use-manifest-build = true
some-future-knob = "whatever"

[editor]
theme = "dark"
`
	if err := os.WriteFile(optionsPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, _, err := Load(dir, "")
	if err != nil {
		t.Fatalf("unknown keys must be ignored: %v", err)
	}
	if !cfg.UseManifestBuild {
		t.Fatalf("recognized key lost among unknown ones")
	}
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	optionsPath := filepath.Join(dir, FileName)
	if err := os.WriteFile(optionsPath, []byte("use-manifest-build = [broken"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := Load(dir, ""); err == nil {
		t.Fatalf("broken options file must surface an error")
	}
}

func TestLoadEmptyToolchainPathsFallBack(t *testing.T) {
	dir := t.TempDir()
	optionsPath := filepath.Join(dir, FileName)
	if err := os.WriteFile(optionsPath, []byte("rustc-path = \"\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, _, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RustcPath != "rustc" {
		t.Fatalf("empty rustc-path must fall back to default, got %q", cfg.RustcPath)
	}
}
