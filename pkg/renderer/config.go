package renderer

import (
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains rendering configuration
type Config struct {
	Width        int             // Image width in pixels
	Height       int             // Image height in pixels
	SamplesLevel int             // Samples per pixel axis, N² samples in total
	MaxDepth     int             // Maximum ray bounce depth
	NumWorkers   int             // Parallel workers, 0 uses runtime.NumCPU()
	TileSize     int             // Side of the square tiles handed to workers
	Seed         int64           // Base seed, each tile derives its own source
	Gamma        float64         // Display gamma applied once during tone mapping
	Mode         integrator.Mode // Light transport algorithm
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       450,
		SamplesLevel: 4,
		MaxDepth:     50,
		TileSize:     16,
		Seed:         42,
		Gamma:        2.2,
		Mode:         integrator.ModePath,
	}
}

// Validate checks that the configuration can be rendered
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "image size %dx%d", c.Width, c.Height)
	case c.SamplesLevel <= 0:
		return errors.Wrapf(ErrInvalidConfig, "samples level %d", c.SamplesLevel)
	case c.MaxDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "max depth %d", c.MaxDepth)
	case c.NumWorkers < 0:
		return errors.Wrapf(ErrInvalidConfig, "worker count %d", c.NumWorkers)
	case c.TileSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tile size %d", c.TileSize)
	case c.Gamma <= 0:
		return errors.Wrapf(ErrInvalidConfig, "gamma %v", c.Gamma)
	case c.Mode != integrator.ModePath && c.Mode != integrator.ModeDirect:
		return errors.Wrapf(ErrInvalidConfig, "mode %q", c.Mode)
	}
	return nil
}

// SamplesPerPixel returns the number of camera rays traced for each pixel
func (c Config) SamplesPerPixel() int {
	return c.SamplesLevel * c.SamplesLevel
}
