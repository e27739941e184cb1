package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// AmbientWeight is the share of a surface color visible without any light
const AmbientWeight = 0.05

// ShadeDirect shades a ray with an ambient term plus the weighted diffuse
// contribution of each unshadowed point light. It never recurses.
func ShadeDirect(ray core.Ray, world geometry.Hittable, pointLights []lights.Light, sky Sky) core.Vec3 {
	var hit material.HitRecord
	if !world.Hit(ray, core.HitEpsilon, core.MaxHitDistance, &hit) {
		if sky == nil {
			return core.Vec3{}
		}
		return sky(ray)
	}

	total := hit.Material.Color().Multiply(AmbientWeight)
	for _, light := range pointLights {
		total = total.Add(light.ShadeDiffuse(&hit, world).Multiply(light.Weight))
	}
	return total
}

// DirectLightingIntegrator implements the legacy point-light model
type DirectLightingIntegrator struct {
	world  geometry.Hittable
	lights []lights.Light
	sky    Sky
}

// NewDirectLightingIntegrator creates a new direct lighting integrator
func NewDirectLightingIntegrator(world geometry.Hittable, pointLights []lights.Light, sky Sky) *DirectLightingIntegrator {
	return &DirectLightingIntegrator{world: world, lights: pointLights, sky: sky}
}

// RayColor shades a camera ray; the sampler is unused
func (d *DirectLightingIntegrator) RayColor(ray core.Ray, _ core.Sampler) core.Vec3 {
	return ShadeDirect(ray, d.world, d.lights, d.sky)
}
