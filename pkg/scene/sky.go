package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

var (
	sunsetRed    = core.ColorFromRGB(245, 64, 64)
	sunsetYellow = core.ColorFromRGB(255, 201, 34)
	white        = core.NewVec3(1, 1, 1)
	skyBlue      = core.NewVec3(0.5, 0.7, 1.0)
)

// GradientSky blends white at the horizon into light blue overhead
func GradientSky(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Y + 1)
	return white.Multiply(1 - t).Add(skyBlue.Multiply(t))
}

// SunsetSky returns a sky that fades from red on the left to yellow on the
// right, scaled by brightness
func SunsetSky(brightness float64) integrator.Sky {
	return func(ray core.Ray) core.Vec3 {
		t := ray.Direction.X
		return sunsetRed.Multiply(0.5 * (1 - t)).
			Add(sunsetYellow.Multiply(1.5 * t)).
			Multiply(brightness)
	}
}

// GentleRedSky is mostly red, brightening to white toward the horizontal
// extremes
func GentleRedSky(ray core.Ray) core.Vec3 {
	t := ray.Direction.X
	return sunsetRed.Multiply(1 - t*t).Add(white.Multiply(1.5 * t * t))
}
