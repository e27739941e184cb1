// Package integrator turns camera rays into radiance, either by recursive
// path tracing or by the legacy direct-lighting model.
package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
)

// Sky returns the background radiance seen along a ray that hits nothing
type Sky func(ray core.Ray) core.Vec3

// BlackSky is a sky that contributes no light
func BlackSky(core.Ray) core.Vec3 {
	return core.Vec3{}
}

// Integrator defines the interface for light transport algorithms. The
// returned radiance is linear and unclamped.
type Integrator interface {
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Mode selects a light transport algorithm
type Mode string

const (
	ModePath   Mode = "path"
	ModeDirect Mode = "direct"
)

// New creates the integrator for mode. Unknown modes fall back to path tracing.
func New(mode Mode, world geometry.Hittable, pointLights []lights.Light, sky Sky, maxDepth int) Integrator {
	if mode == ModeDirect {
		return NewDirectLightingIntegrator(world, pointLights, sky)
	}
	return NewPathTracingIntegrator(world, sky, maxDepth)
}
