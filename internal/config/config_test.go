package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Material != "steel01" {
		t.Errorf("expected material steel01, got %s", cfg.Material)
	}
	if cfg.MaxAmplitude <= 0 {
		t.Error("max amplitude should be positive")
	}
	if cfg.Points <= 0 {
		t.Error("points should be positive")
	}
	if cfg.MaterialParams["fy"] != DefaultFy {
		t.Errorf("expected fy %f, got %f", DefaultFy, cfg.MaterialParams["fy"])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Protocol = "fema461"
	cfg.Alpha = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Protocol != "fema461" {
		t.Errorf("expected protocol fema461, got %s", loaded.Protocol)
	}
	if loaded.Alpha != 0.5 {
		t.Errorf("expected alpha 0.5, got %f", loaded.Alpha)
	}
	if loaded.MaterialParams["e"] != DefaultE {
		t.Errorf("expected elastic modulus %f, got %f", DefaultE, loaded.MaterialParams["e"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("steel01", "grade60")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.MaterialParams["fy"] != 420 {
		t.Errorf("expected fy 420, got %f", cfg.MaterialParams["fy"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("steel01", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "grade60")
	if cfg != nil {
		t.Error("expected nil for nonexistent material")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("concrete01")
	if len(presets) == 0 {
		t.Error("expected presets for concrete01")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent material")
	}
}
