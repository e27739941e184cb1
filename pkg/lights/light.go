// Package lights holds the point lights used by the direct-lighting mode.
// Path-traced scenes light themselves with emissive materials instead.
package lights

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// DiffuseWeight scales the Lambert term of every point light
const DiffuseWeight = 0.8

// Light is a point light with a scalar intensity
type Light struct {
	Position core.Vec3
	Weight   float64
}

// NewLight creates a point light
func NewLight(position core.Vec3, weight float64) Light {
	return Light{Position: position, Weight: weight}
}

// ShadeDiffuse returns the unweighted Lambert contribution of the light at a
// hit point, or black when the point is in shadow
func (l Light) ShadeDiffuse(hit *material.HitRecord, world geometry.Hittable) core.Vec3 {
	toLight := l.Position.Subtract(hit.Point)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}
	}

	shadowRay := core.NewRay(hit.Point, toLight)
	var shadow material.HitRecord
	if world.Hit(shadowRay, core.HitEpsilon, distance, &shadow) {
		return core.Vec3{}
	}

	cosine := math.Max(0, shadowRay.Direction.Dot(hit.Normal()))
	return hit.Material.Color().Multiply(cosine * DiffuseWeight)
}
