package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Rectangle is a planar quadrilateral split into two triangles
type Rectangle struct {
	Corners   [4]core.Vec3
	Material  material.Material
	triangles *TriangleList
}

// NewRectangle creates a rectangle from four coplanar corners in
// counter-clockwise order
func NewRectangle(corners [4]core.Vec3, mat material.Material) *Rectangle {
	return &Rectangle{
		Corners:  corners,
		Material: mat,
		triangles: NewTriangleList([]*Triangle{
			NewTriangle(corners[0], corners[1], corners[2], mat),
			NewTriangle(corners[2], corners[3], corners[0], mat),
		}),
	}
}

// NewRectangleFromEdges creates a rectangle from a corner and two edge vectors
func NewRectangleFromEdges(corner, u, v core.Vec3, mat material.Material) *Rectangle {
	return NewRectangle([4]core.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}, mat)
}

// Hit tests both triangles
func (r *Rectangle) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return r.triangles.Hit(ray, tMin, tMax, rec)
}

// BoundingBox returns the box of both triangles
func (r *Rectangle) BoundingBox() (core.AABB, bool) {
	return r.triangles.BoundingBox()
}

// Normal returns the unit normal of the rectangle's plane
func (r *Rectangle) Normal() core.Vec3 {
	return r.triangles.Triangles[0].FaceNormal()
}
