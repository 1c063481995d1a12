package config

import (
	"os"
	"testing"
)

func TestDefault(t *testing.T) {
	opts, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if !opts.SyncClocks || !opts.HandleResets || !opts.Dejitter {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.WinsorThreshold != 1e-4 {
		t.Errorf("WinsorThreshold = %v, want 1e-4", opts.WinsorThreshold)
	}
}

func TestLoadOverridesDefault(t *testing.T) {
	path := writeTempConfig(t, `
[xdf]
sync_clocks = false
verbose = true
winsor_threshold = 0.5
`)
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.SyncClocks {
		t.Error("expected sync_clocks = false from override")
	}
	if !opts.Verbose {
		t.Error("expected verbose = true from override")
	}
	if opts.WinsorThreshold != 0.5 {
		t.Errorf("WinsorThreshold = %v, want 0.5", opts.WinsorThreshold)
	}
	// Fields the override omits should keep the embedded default.
	if !opts.HandleResets {
		t.Error("expected handle_clock_resets to retain its default of true")
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := dir + "/xdf.toml"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
