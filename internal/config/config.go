// Package config holds the runtime configuration surface, parsed from
// MUDRA_* environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Engine strategy names.
const (
	StrategyCPU      = "cpu"
	StrategyPingPong = "pingpong"
)

// Config is the full configuration surface of the pipeline.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"MUDRA_ADDR" envDefault:":8080"`

	// CameraID selects the capture device.
	CameraID int `env:"MUDRA_CAMERA_ID" envDefault:"0"`

	// MotionThreshold is the percent of changed pixels that counts as
	// motion for the idle/active gate.
	MotionThreshold float64 `env:"MUDRA_MOTION_THRESHOLD" envDefault:"1.0"`

	// ParticleCount sizes the CPU engine.
	ParticleCount int `env:"MUDRA_PARTICLES" envDefault:"30000"`

	// Strategy selects the engine: "cpu" or "pingpong".
	Strategy string `env:"MUDRA_STRATEGY" envDefault:"cpu"`

	// TexWidth and TexHeight size the ping-pong buffers; the particle
	// count for that strategy is their product.
	TexWidth  int `env:"MUDRA_TEX_WIDTH" envDefault:"512"`
	TexHeight int `env:"MUDRA_TEX_HEIGHT" envDefault:"512"`

	// SmoothingWindow is the gesture debounce window in detection cycles.
	SmoothingWindow int `env:"MUDRA_SMOOTHING_WINDOW" envDefault:"15"`

	// SceneExtent is the half-width of the scene in world units.
	SceneExtent float64 `env:"MUDRA_SCENE_EXTENT" envDefault:"240"`

	// InteractionRadius is the force influence radius in world units.
	InteractionRadius float64 `env:"MUDRA_INTERACTION_RADIUS" envDefault:"60"`

	// RepelGain and AttractGain scale the two force modes.
	RepelGain   float64 `env:"MUDRA_REPEL_GAIN" envDefault:"45"`
	AttractGain float64 `env:"MUDRA_ATTRACT_GAIN" envDefault:"18"`

	// ColorBlendRate and BlendRate are the per-tick exponential rates for
	// color and position.
	ColorBlendRate float64 `env:"MUDRA_COLOR_BLEND_RATE" envDefault:"0.05"`
	BlendRate      float64 `env:"MUDRA_BLEND_RATE" envDefault:"0.08"`

	// PresetDB is the SQLite path for stored presets; empty uses
	// ~/.mudra/mudra.db.
	PresetDB string `env:"MUDRA_PRESET_DB"`

	// Preset names the stored preset to apply at startup.
	Preset string `env:"MUDRA_PRESET"`
}

// Load parses the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Strategy != StrategyCPU && c.Strategy != StrategyPingPong {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.ParticleCount < 0 {
		return fmt.Errorf("particle count %d is negative", c.ParticleCount)
	}
	if c.Strategy == StrategyPingPong && (c.TexWidth <= 0 || c.TexHeight <= 0) {
		return fmt.Errorf("invalid texture size %dx%d", c.TexWidth, c.TexHeight)
	}
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing window %d must be at least 1", c.SmoothingWindow)
	}
	return nil
}
