package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	return core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	).Clamp(0, 1)
}

const (
	gridSize   = 12
	gridExtent = 9.0 // Side length of the square the grid spans
)

// NewSphereGridScene lays out a grid of spheres on a ground plane. Hue varies
// along x and chroma along z; every third sphere is glass and the rest
// alternate between metal and diffuse. A large emissive sphere overhead acts
// as the sun.
func NewSphereGridScene(opts Options) (*Scene, error) {
	s := newScene(opts, core.NewVec3(4.5, 6, 18), core.NewVec3(4.5, 0.8, 4.5), 40, SunsetSky(0.3))

	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(20, 25, 20), 8, material.NewDiffuseLight(core.NewVec3(12, 11.5, 10))),
	)

	spacing := gridExtent / float64(gridSize-1)
	radius := math.Min(0.35, spacing*0.35)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			center := core.NewVec3(
				float64(i)*spacing-gridExtent/2+4.5,
				radius,
				float64(j)*spacing-gridExtent/2+4.5,
			)

			hue := float64(i) / float64(gridSize-1) * 360
			chroma := 0.05 + float64(j)/float64(gridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			switch (i + j) % 3 {
			case 0:
				mat = material.NewTransparent(color, 0.1, 0.9, 1.5)
			case 1:
				mat = material.NewMetal(color)
			default:
				mat = material.NewLambertian(color)
			}
			s.Add(geometry.NewSphere(center, radius, mat))
		}
	}
	return s, nil
}
