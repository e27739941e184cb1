package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// TraceRay returns the radiance arriving along ray. Materials recurse back
// into the trace with one less bounce; at depth zero the path returns black.
// Rays that escape the scene see the sky. Point lights play no part in
// recursive shading: emissive materials and the sky light the scene.
func TraceRay(ray core.Ray, world geometry.Hittable, _ []lights.Light, sky Sky, depthLimit int, sampler core.Sampler) core.Vec3 {
	return NewPathTracer(world, sky, sampler).TraceRay(ray, depthLimit)
}

// PathTracer carries everything a light path needs. It is cheap to create
// and owned by a single goroutine; the world it reads is shared.
type PathTracer struct {
	world   geometry.Hittable
	sky     Sky
	sampler core.Sampler
}

// NewPathTracer creates a tracer drawing random numbers from sampler
func NewPathTracer(world geometry.Hittable, sky Sky, sampler core.Sampler) *PathTracer {
	if sky == nil {
		sky = BlackSky
	}
	return &PathTracer{world: world, sky: sky, sampler: sampler}
}

// TraceRay implements material.Tracer
func (pt *PathTracer) TraceRay(ray core.Ray, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !pt.world.Hit(ray, core.HitEpsilon, core.MaxHitDistance, &hit) {
		return pt.sky(ray)
	}

	return hit.Material.Shade(pt, ray, &hit, depth, pt.sampler)
}

// PathTracingIntegrator implements recursive Monte Carlo path tracing
type PathTracingIntegrator struct {
	world    geometry.Hittable
	sky      Sky
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(world geometry.Hittable, sky Sky, maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{world: world, sky: sky, maxDepth: maxDepth}
}

// RayColor traces a camera ray with the configured depth limit
func (p *PathTracingIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return NewPathTracer(p.world, p.sky, sampler).TraceRay(ray, p.maxDepth)
}
