package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Triangle is a single triangle with per-vertex normals. The normal returned
// on a hit is interpolated across the vertex normals.
type Triangle struct {
	Vertices [3]core.Vec3
	Normals  [3]core.Vec3 // Unit normals at each vertex
	Material material.Material
	edges    [2]core.Vec3 // V1-V0 and V2-V0
	face     core.Vec3    // Unit face normal
	bbox     core.AABB
}

// NewTriangle creates a flat-shaded triangle from counter-clockwise vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := newTriangle(v0, v1, v2, mat)
	t.Normals = [3]core.Vec3{t.face, t.face, t.face}
	return t
}

// NewSmoothTriangle creates a triangle with explicit vertex normals
func NewSmoothTriangle(vertices, normals [3]core.Vec3, mat material.Material) *Triangle {
	t := newTriangle(vertices[0], vertices[1], vertices[2], mat)
	for i, n := range normals {
		t.Normals[i] = n.Normalize()
	}
	return t
}

func newTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{
		Vertices: [3]core.Vec3{v0, v1, v2},
		Material: mat,
		edges:    [2]core.Vec3{v1.Subtract(v0), v2.Subtract(v0)},
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
	}
	t.face = t.edges[0].Cross(t.edges[1]).Normalize()
	return t
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	h := ray.Direction.Cross(t.edges[1])
	det := t.edges[0].Dot(h)

	// Ray lies in the plane of the triangle
	if math.Abs(det) < core.ParallelEpsilon {
		return false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.Vertices[0])
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(t.edges[0])
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	dist := f * t.edges[1].Dot(q)
	if dist <= tMin || dist >= tMax {
		return false
	}

	rec.Point = ray.At(dist)
	rec.Ray = ray
	rec.Distance = dist
	rec.OutwardNormal = t.NormalAt(u, v)
	rec.Material = t.Material
	return true
}

// NormalAt interpolates the vertex normals at barycentric coordinates (u, v)
// measured along the V1 and V2 edges
func (t *Triangle) NormalAt(u, v float64) core.Vec3 {
	n := t.Normals[0].Multiply(1 - u - v).
		Add(t.Normals[1].Multiply(u)).
		Add(t.Normals[2].Multiply(v))

	// Opposing vertex normals can cancel out
	if n.NearZero() {
		return t.face
	}
	return n.Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() (core.AABB, bool) {
	return t.bbox, true
}

// FaceNormal returns the unit normal of the triangle's plane
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.face
}

// Centroid returns the average of the three vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Divide(3)
}

// TriangleList is a flat leaf of triangles with one cached bounding box
type TriangleList struct {
	Triangles []*Triangle
	bbox      core.AABB
	bounded   bool
}

// NewTriangleList creates a list over triangles
func NewTriangleList(triangles []*Triangle) *TriangleList {
	bbox, bounded := boundsOf(triangles)
	return &TriangleList{Triangles: triangles, bbox: bbox, bounded: bounded}
}

// Hit returns the closest hit over all triangles in the list
func (tl *TriangleList) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax
	for _, tri := range tl.Triangles {
		if tri.Hit(ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.Distance
		}
	}
	return hitAnything
}

// BoundingBox returns the cached union of the triangle boxes
func (tl *TriangleList) BoundingBox() (core.AABB, bool) {
	return tl.bbox, tl.bounded
}
