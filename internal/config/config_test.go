package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "explosions.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if got := Default().Effects.Lifetime; got != ExplosionLifetime || got != 31 {
		t.Fatalf("expected lifetime 31, got %d", got)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
effects:
  capacity: 8
  lifetime: 0
spawn:
  interval: 16
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Effects.Capacity != 8 {
		t.Errorf("expected capacity 8, got %d", cfg.Effects.Capacity)
	}
	if cfg.Effects.Lifetime != 31 {
		t.Errorf("expected derived lifetime 31, got %d", cfg.Effects.Lifetime)
	}
	if cfg.Spawn.Interval != 16 {
		t.Errorf("expected interval 16, got %d", cfg.Spawn.Interval)
	}
	if cfg.Effects.BaseTile != ExplosionBaseTile {
		t.Errorf("expected default base tile to survive, got %#x", cfg.Effects.BaseTile)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestLoadDerivesLifetime(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"frames only", "effects:\n  frames: 4\n", 15},
		{"frame span only", "effects:\n  frameSpan: 2\n", 15},
		{"both", "effects:\n  frames: 6\n  frameSpan: 3\n", 17},
		{"explicit lifetime kept", "effects:\n  frames: 4\n  lifetime: 10\n", 10},
		{"untouched", "log:\n  level: warn\n", 31},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, c.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Effects.Lifetime != c.want {
				t.Fatalf("expected lifetime %d, got %d", c.want, cfg.Effects.Lifetime)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"zero capacity", "effects: {capacity: 0}", "effects.capacity"},
		{"lifetime too long", "effects: {lifetime: 32}", "effects.lifetime"},
		{"interval not power of two", "spawn: {interval: 6}", "spawn.interval"},
		{"palette out of range", "effects: {palette: 4}", "effects.palette"},
		{"base tile overflow", "effects: {baseTile: 250}", "effects.baseTile"},
		{"zero tps", "display: {tps: 0}", "display.tps"},
		{"volume too loud", "audio: {volume: 1.5}", "audio.volume"},
		{"bad yaml", "effects: [", "parse config"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error mentioning %q, got %v", c.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
