package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.World.WidthMeters <= 0 || cfg.World.HeightMeters <= 0 {
		t.Errorf("bad world size: %v x %v", cfg.World.WidthMeters, cfg.World.HeightMeters)
	}
	if cfg.Physics.DT <= 0 {
		t.Errorf("bad dt: %v", cfg.Physics.DT)
	}
	if cfg.Snake.SegmentCount < 2 {
		t.Errorf("snake needs at least 2 segments, got %d", cfg.Snake.SegmentCount)
	}
	if cfg.Population.Snakes <= 0 || cfg.Population.Plankton <= 0 {
		t.Errorf("empty initial population: %+v", cfg.Population)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}
	d := &cfg.Derived

	if d.HalfW32 != d.WorldW32/2 || d.HalfH32 != d.WorldH32/2 {
		t.Errorf("half extents inconsistent: %v/%v vs %v/%v", d.HalfW32, d.HalfH32, d.WorldW32, d.WorldH32)
	}
	if d.DT32 != float32(cfg.Physics.DT) {
		t.Errorf("dt32 = %v, want %v", d.DT32, cfg.Physics.DT)
	}
	if d.WindowTicks < 1 {
		t.Errorf("window ticks = %d, want >= 1", d.WindowTicks)
	}

	// Light zone fractions measure from the floor.
	if d.LightZoneTopY <= d.LightZoneBotY {
		t.Errorf("light zone inverted: top %v <= bottom %v", d.LightZoneTopY, d.LightZoneBotY)
	}
	if d.LightZoneBotY < -d.HalfH32 || d.LightZoneTopY > d.HalfH32 {
		t.Errorf("light zone [%v, %v] outside world [%v, %v]",
			d.LightZoneBotY, d.LightZoneTopY, -d.HalfH32, d.HalfH32)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("world:\n  width_meters: 42\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.World.WidthMeters != 42 {
		t.Errorf("width = %v, want 42", cfg.World.WidthMeters)
	}
	// Untouched sections keep their defaults.
	if cfg.Snake.SegmentCount < 2 {
		t.Errorf("defaults lost on partial override: %+v", cfg.Snake)
	}
	if cfg.Derived.WorldW32 != 42 {
		t.Errorf("derived not recomputed: %v", cfg.Derived.WorldW32)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.WidthMeters = 33

	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if loaded.World.WidthMeters != 33 {
		t.Errorf("round trip lost width: %v", loaded.World.WidthMeters)
	}
}
