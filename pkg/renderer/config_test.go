package renderer

import (
	"testing"

	"github.com/pkg/errors"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"direct mode", func(c *Config) { c.Mode = "direct" }, false},
		{"depth zero", func(c *Config) { c.MaxDepth = 0 }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -1 }, true},
		{"zero samples", func(c *Config) { c.SamplesLevel = 0 }, true},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }, true},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }, true},
		{"zero gamma", func(c *Config) { c.Gamma = 0 }, true},
		{"unknown mode", func(c *Config) { c.Mode = "bdpt" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_SamplesPerPixel(t *testing.T) {
	config := DefaultConfig()
	config.SamplesLevel = 3
	if config.SamplesPerPixel() != 9 {
		t.Errorf("SamplesPerPixel = %d, want 9", config.SamplesPerPixel())
	}
}
