// Package geometry contains the intersectable scene objects, the BVH that
// accelerates them and the cameras that generate primary rays.
package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Hittable is implemented by every object a ray can hit. The set of
// implementations is closed: Sphere, Plane, Triangle, TriangleList,
// Rectangle, Mesh, BVH and HittableList.
type Hittable interface {
	// Hit reports whether the ray hits the object at a distance strictly
	// inside (tMin, tMax). On a hit it fills rec; on a miss rec is untouched.
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool

	// BoundingBox returns the object's box, or false for unbounded objects
	BoundingBox() (core.AABB, bool)

	hittable()
}

func (*Sphere) hittable()       {}
func (*Plane) hittable()        {}
func (*Triangle) hittable()     {}
func (*TriangleList) hittable() {}
func (*Rectangle) hittable()    {}
func (*Mesh) hittable()         {}
func (*BVH) hittable()          {}
func (*HittableList) hittable() {}

// hitObject dispatches a hit test on the concrete object type so the hot
// traversal loops make direct calls.
func hitObject(obj Hittable, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	switch o := obj.(type) {
	case *Triangle:
		return o.Hit(ray, tMin, tMax, rec)
	case *Sphere:
		return o.Hit(ray, tMin, tMax, rec)
	case *BVH:
		return o.Hit(ray, tMin, tMax, rec)
	case *HittableList:
		return o.Hit(ray, tMin, tMax, rec)
	case *TriangleList:
		return o.Hit(ray, tMin, tMax, rec)
	case *Rectangle:
		return o.Hit(ray, tMin, tMax, rec)
	case *Mesh:
		return o.Hit(ray, tMin, tMax, rec)
	case *Plane:
		return o.Hit(ray, tMin, tMax, rec)
	default:
		return false
	}
}

// boundsOf unions the boxes of objects. It returns false if objects is empty
// or any member is unbounded.
func boundsOf[T Hittable](objects []T) (core.AABB, bool) {
	if len(objects) == 0 {
		return core.AABB{}, false
	}
	box, ok := objects[0].BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	for _, obj := range objects[1:] {
		next, ok := obj.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		box = core.SurroundingBox(box, next)
	}
	return box, true
}
