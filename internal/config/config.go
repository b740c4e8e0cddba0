package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 240
	WindowScale  = 3
	TPS          = 60

	PixelsPerTile = 8

	// Explosion ring
	ExplosionSlots     = 10
	ExplosionFrames    = 8
	ExplosionFrameSpan = 4
	ExplosionLifetime  = ExplosionFrames*ExplosionFrameSpan - 1
	ExplosionBaseTile  = 0x30
	ExplosionPalette   = 1

	// Spawning while A is held
	SpawnInterval = 8
	SpawnJitter   = 0xF
	SpawnYOffset  = 8

	// Cogwheel
	CogX     = 15 * PixelsPerTile
	CogY     = 14 * PixelsPerTile
	CogSpeed = 1
	CogBoost = 2

	// Hardware sprite limits
	SpriteBudget  = 64
	ScanlineLimit = 8

	PaletteCyclePeriod = 30
)

type Config struct {
	Effects EffectsConfig `yaml:"effects"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Cog     CogConfig     `yaml:"cog"`
	Display DisplayConfig `yaml:"display"`
	Palette PaletteConfig `yaml:"palette"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
}

// EffectsConfig sizes the explosion ring and its animation.
type EffectsConfig struct {
	Capacity  int   `yaml:"capacity"`
	Frames    int   `yaml:"frames"`
	FrameSpan int   `yaml:"frameSpan"` // screen frames per animation frame
	Lifetime  int   `yaml:"lifetime"`  // 0 means frames*frameSpan-1
	BaseTile  uint8 `yaml:"baseTile"`
	Palette   uint8 `yaml:"palette"`
}

type SpawnConfig struct {
	Interval int   `yaml:"interval"` // frames between spawns while A is held, power of two
	Jitter   uint8 `yaml:"jitter"`   // mask applied to random offsets
	YOffset  int   `yaml:"yOffset"`
}

type CogConfig struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Speed int `yaml:"speed"`
	Boost int `yaml:"boost"`
}

type DisplayConfig struct {
	Scale         int `yaml:"scale"`
	TPS           int `yaml:"tps"`
	SpriteBudget  int `yaml:"spriteBudget"`
	ScanlineLimit int `yaml:"scanlineLimit"` // 0 disables the per-scanline limit
}

type PaletteConfig struct {
	CyclePeriod int `yaml:"cyclePeriod"`
}

type AudioConfig struct {
	Volume float64 `yaml:"volume"` // 0 silences, 1 plays the sample unchanged
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration matching the built-in constants.
func Default() *Config {
	cfg := defaults()
	cfg.normalize()
	return cfg
}

// defaults leaves derived fields at zero so Load can tell them apart from
// values set in the file.
func defaults() *Config {
	return &Config{
		Effects: EffectsConfig{
			Capacity:  ExplosionSlots,
			Frames:    ExplosionFrames,
			FrameSpan: ExplosionFrameSpan,
			BaseTile:  ExplosionBaseTile,
			Palette:   ExplosionPalette,
		},
		Spawn: SpawnConfig{
			Interval: SpawnInterval,
			Jitter:   SpawnJitter,
			YOffset:  SpawnYOffset,
		},
		Cog: CogConfig{
			X:     CogX,
			Y:     CogY,
			Speed: CogSpeed,
			Boost: CogBoost,
		},
		Display: DisplayConfig{
			Scale:         WindowScale,
			TPS:           TPS,
			SpriteBudget:  SpriteBudget,
			ScanlineLimit: ScanlineLimit,
		},
		Palette: PaletteConfig{CyclePeriod: PaletteCyclePeriod},
		Audio:   AudioConfig{Volume: 1},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// normalize fills in fields derived from others.
func (c *Config) normalize() {
	if c.Effects.Lifetime == 0 {
		c.Effects.Lifetime = c.Effects.Frames*c.Effects.FrameSpan - 1
	}
}

// Validate checks that the animation indexing stays inside [0, frames) for
// every remaining lifetime value and that the loop parameters are usable.
func (c *Config) Validate() error {
	e := c.Effects
	if e.Capacity < 1 {
		return fmt.Errorf("effects.capacity must be >= 1, got %d", e.Capacity)
	}
	if e.Frames < 1 {
		return fmt.Errorf("effects.frames must be >= 1, got %d", e.Frames)
	}
	if e.FrameSpan < 1 {
		return fmt.Errorf("effects.frameSpan must be >= 1, got %d", e.FrameSpan)
	}
	if maxLife := e.Frames*e.FrameSpan - 1; e.Lifetime < 1 || e.Lifetime > maxLife {
		return fmt.Errorf("effects.lifetime must be between 1 and %d, got %d", maxLife, e.Lifetime)
	}
	if int(e.BaseTile)+e.Frames > 256 {
		return fmt.Errorf("effects.baseTile %#02x leaves no room for %d frames", e.BaseTile, e.Frames)
	}
	if e.Palette > 3 {
		return fmt.Errorf("effects.palette must be between 0 and 3, got %d", e.Palette)
	}

	if n := c.Spawn.Interval; n < 1 || n > 256 || n&(n-1) != 0 {
		return fmt.Errorf("spawn.interval must be a power of two up to 256, got %d", n)
	}

	if c.Cog.Speed < 0 || c.Cog.Boost < 0 {
		return fmt.Errorf("cog speeds must be >= 0, got %d/%d", c.Cog.Speed, c.Cog.Boost)
	}

	d := c.Display
	if d.Scale < 1 {
		return fmt.Errorf("display.scale must be >= 1, got %d", d.Scale)
	}
	if d.TPS < 1 {
		return fmt.Errorf("display.tps must be >= 1, got %d", d.TPS)
	}
	if d.SpriteBudget < 0 || d.ScanlineLimit < 0 {
		return fmt.Errorf("display sprite limits must be >= 0, got %d/%d", d.SpriteBudget, d.ScanlineLimit)
	}

	if v := c.Audio.Volume; v < 0 || v > 1 {
		return fmt.Errorf("audio.volume must be between 0 and 1, got %g", v)
	}

	if c.Palette.CyclePeriod < 1 {
		return fmt.Errorf("palette.cyclePeriod must be >= 1, got %d", c.Palette.CyclePeriod)
	}

	return nil
}
