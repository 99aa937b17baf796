package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.Strategy != StrategyCPU {
		t.Errorf("Strategy = %q, want cpu", cfg.Strategy)
	}
	if cfg.ParticleCount != 30000 {
		t.Errorf("ParticleCount = %d, want 30000", cfg.ParticleCount)
	}
	if cfg.SmoothingWindow != 15 {
		t.Errorf("SmoothingWindow = %d, want 15", cfg.SmoothingWindow)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MUDRA_STRATEGY", "pingpong")
	t.Setenv("MUDRA_TEX_WIDTH", "1024")
	t.Setenv("MUDRA_TEX_HEIGHT", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Strategy != StrategyPingPong || cfg.TexWidth != 1024 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Strategy = "gpu" }},
		{"negative particles", func(c *Config) { c.ParticleCount = -1 }},
		{"zero texture", func(c *Config) { c.Strategy = StrategyPingPong; c.TexWidth = 0 }},
		{"zero window", func(c *Config) { c.SmoothingWindow = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
