package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal. It has no
// bounding box, so it can never be placed inside a BVH.
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal
	Material material.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	denominator := p.Normal.Dot(ray.Direction)

	// Parallel rays never hit
	if math.Abs(denominator) <= core.ParallelEpsilon {
		return false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t >= tMax {
		return false
	}

	rec.Point = ray.At(t)
	rec.Ray = ray
	rec.Distance = t
	rec.OutwardNormal = p.Normal
	rec.Material = p.Material
	return true
}

// BoundingBox always reports false: a plane is unbounded
func (p *Plane) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}
