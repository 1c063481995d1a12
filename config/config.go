// Package config loads xdf.Options from a TOML file, falling back to
// an embedded default when fields are omitted.
package config

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/xdfio/xdf/xdf"
)

//go:embed default.toml
var defaultConfigData []byte

// File is the TOML shape of a config file: a single [xdf] table whose
// fields mirror xdf.Options.
type File struct {
	XDF Section `toml:"xdf"`
}

// Section mirrors xdf.Options with TOML tags (spec §6 field names).
type Section struct {
	SyncClocks   bool `toml:"sync_clocks"`
	HandleResets bool `toml:"handle_clock_resets"`
	Dejitter     bool `toml:"dejitter_timestamps"`
	Verbose      bool `toml:"verbose"`

	JitterBreakThresholdSeconds float64 `toml:"jitter_break_threshold_seconds"`
	JitterBreakThresholdSamples int64   `toml:"jitter_break_threshold_samples"`

	ClockResetThresholdSeconds       float64 `toml:"clock_reset_threshold_seconds"`
	ClockResetThresholdStds          float64 `toml:"clock_reset_threshold_stds"`
	ClockResetThresholdOffsetSeconds float64 `toml:"clock_reset_threshold_offset_seconds"`
	ClockResetThresholdOffsetStds    float64 `toml:"clock_reset_threshold_offset_stds"`

	WinsorThreshold float64 `toml:"winsor_threshold"`
}

func (s Section) toOptions() xdf.Options {
	return xdf.Options{
		Verbose:                          s.Verbose,
		SyncClocks:                       s.SyncClocks,
		HandleResets:                     s.HandleResets,
		Dejitter:                         s.Dejitter,
		JitterBreakThresholdSeconds:      s.JitterBreakThresholdSeconds,
		JitterBreakThresholdSamples:      s.JitterBreakThresholdSamples,
		ClockResetThresholdSeconds:       s.ClockResetThresholdSeconds,
		ClockResetThresholdStds:          s.ClockResetThresholdStds,
		ClockResetThresholdOffsetSeconds: s.ClockResetThresholdOffsetSeconds,
		ClockResetThresholdOffsetStds:    s.ClockResetThresholdOffsetStds,
		WinsorThreshold:                  s.WinsorThreshold,
	}
}

// Default returns the embedded default configuration as xdf.Options.
func Default() (xdf.Options, error) {
	var f File
	if _, err := toml.Decode(string(defaultConfigData), &f); err != nil {
		return xdf.Options{}, fmt.Errorf("parsing embedded default config: %w", err)
	}
	return f.XDF.toOptions(), nil
}

// Load reads path as a TOML config file and returns the xdf.Options it
// describes. The file is decoded onto the embedded default first, so
// fields it omits keep the default's value rather than zeroing out.
func Load(path string) (xdf.Options, error) {
	var f File
	if _, err := toml.Decode(string(defaultConfigData), &f); err != nil {
		return xdf.Options{}, fmt.Errorf("parsing embedded default config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return xdf.Options{}, fmt.Errorf("parsing config at %s: %w", path, err)
	}
	return f.XDF.toOptions(), nil
}
