package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CardSummaryLimit != 120 {
		t.Errorf("expected CardSummaryLimit=120, got %d", cfg.CardSummaryLimit)
	}
	if cfg.MaxConcurrentFiles != 4 {
		t.Errorf("expected MaxConcurrentFiles=4, got %d", cfg.MaxConcurrentFiles)
	}
	if len(cfg.PictureWidths) != 3 {
		t.Errorf("expected 3 picture widths, got %d", len(cfg.PictureWidths))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("EDS_ASSET_BASE", "")
	t.Setenv("EDS_CARD_SUMMARY_LIMIT", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "eds.yaml")

	cfg := DefaultConfig()
	cfg.AssetBase = "/content/site"
	cfg.CardSummaryLimit = 80

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.AssetBase != "/content/site" {
		t.Errorf("expected AssetBase=/content/site, got %s", loaded.AssetBase)
	}
	if loaded.CardSummaryLimit != 80 {
		t.Errorf("expected CardSummaryLimit=80, got %d", loaded.CardSummaryLimit)
	}
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EDS_ASSET_BASE", "")
	t.Setenv("EDS_CARD_SUMMARY_LIMIT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file should not error, got: %v", err)
	}
	if cfg.CardSummaryLimit != DefaultConfig().CardSummaryLimit {
		t.Errorf("expected default CardSummaryLimit, got %d", cfg.CardSummaryLimit)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	os.Setenv("EDS_ASSET_BASE", "/env/base")
	defer os.Unsetenv("EDS_ASSET_BASE")

	os.Setenv("EDS_CARD_SUMMARY_LIMIT", "42")
	defer os.Unsetenv("EDS_CARD_SUMMARY_LIMIT")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.AssetBase != "/env/base" {
		t.Errorf("expected AssetBase=/env/base, got %s", cfg.AssetBase)
	}
	if cfg.CardSummaryLimit != 42 {
		t.Errorf("expected CardSummaryLimit=42, got %d", cfg.CardSummaryLimit)
	}
}

func TestConfig_EnvOverrideIgnoresBadLimit(t *testing.T) {
	os.Setenv("EDS_CARD_SUMMARY_LIMIT", "not-a-number")
	defer os.Unsetenv("EDS_CARD_SUMMARY_LIMIT")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.CardSummaryLimit != 120 {
		t.Errorf("expected CardSummaryLimit=120, got %d", cfg.CardSummaryLimit)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()

	cfg.CardSummaryLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative card_summary_limit")
	}

	cfg = DefaultConfig()
	cfg.MaxConcurrentFiles = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero max_concurrent_files")
	}

	cfg = DefaultConfig()
	cfg.PictureWidths = []int{750, -1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative picture width")
	}

	cfg = DefaultConfig()
	cfg.Watch.Debounce = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad debounce")
	}

	cfg = DefaultConfig()
	cfg.Watch.Debounce = "1ns"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for sub-millisecond debounce")
	}

	cfg = DefaultConfig()
	cfg.Watch.Debounce = "0s"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero debounce")
	}

	cfg = DefaultConfig()
	cfg.Watch.Debounce = "1ms"
	if err := cfg.Validate(); err != nil {
		t.Errorf("1ms debounce should validate, got: %v", err)
	}
}

func TestConfig_WatchDebounce(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.WatchDebounce(); got != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", got)
	}

	cfg.Watch.Debounce = "2s"
	if got := cfg.WatchDebounce(); got != 2*time.Second {
		t.Errorf("expected 2s, got %v", got)
	}

	cfg.Watch.Debounce = "garbage"
	if got := cfg.WatchDebounce(); got != 500*time.Millisecond {
		t.Errorf("expected fallback 500ms, got %v", got)
	}
}
