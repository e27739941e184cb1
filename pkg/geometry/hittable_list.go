package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// HittableList is an unordered collection of objects searched linearly. It
// serves as BVH leaf and as the top-level world holding unbounded objects.
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list from objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (hl *HittableList) Add(obj Hittable) {
	hl.Objects = append(hl.Objects, obj)
}

// Len returns the number of objects in the list
func (hl *HittableList) Len() int {
	return len(hl.Objects)
}

// Hit returns the closest hit over all objects, never merely the first
func (hl *HittableList) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax
	for _, obj := range hl.Objects {
		if hitObject(obj, ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.Distance
		}
	}
	return hitAnything
}

// BoundingBox returns the union of the members' boxes. An empty list or one
// holding an unbounded object has no box.
func (hl *HittableList) BoundingBox() (core.AABB, bool) {
	return boundsOf(hl.Objects)
}
