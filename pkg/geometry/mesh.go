package geometry

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Mesh is a triangle soup with smooth vertex normals and its own BVH
type Mesh struct {
	triangles []*Triangle
	bvh       *BVH
}

// MeshOptions contains optional parameters for mesh creation
type MeshOptions struct {
	Rotation  *core.Vec3 // Rotation in radians around X, Y, Z (in that order)
	Center    *core.Vec3 // Pivot for the rotation, defaults to the origin
	Scale     float64    // Uniform scale applied before rotation, 0 means 1
	Translate core.Vec3  // Offset applied last
	MaxAtLeaf int        // BVH leaf size, 0 means DefaultMaxAtLeaf
}

// NewMesh creates a mesh from vertices and triangle indices (three per face).
// Each vertex normal is the normalized sum of the face normals of the
// triangles sharing that vertex.
func NewMesh(vertices []core.Vec3, faces []int, mat material.Material, options *MeshOptions) (*Mesh, error) {
	if len(faces)%3 != 0 {
		return nil, errors.Errorf("face index count %d is not a multiple of 3", len(faces))
	}
	if len(faces) == 0 {
		return nil, errors.Wrap(ErrEmptyBVH, "mesh has no faces")
	}
	for i, index := range faces {
		if index < 0 || index >= len(vertices) {
			return nil, errors.Errorf("face %d references vertex %d, mesh has %d vertices", i/3, index, len(vertices))
		}
	}

	positions := transformVertices(vertices, options)
	triangles := lo.Chunk(faces, 3)

	// Accumulate unweighted face normals per vertex
	normals := make([]core.Vec3, len(positions))
	for _, face := range triangles {
		v0, v1, v2 := positions[face[0]], positions[face[1]], positions[face[2]]
		faceNormal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
		for _, index := range face {
			normals[index] = normals[index].Add(faceNormal)
		}
	}

	meshTriangles := lo.Map(triangles, func(face []int, _ int) *Triangle {
		return NewSmoothTriangle(
			[3]core.Vec3{positions[face[0]], positions[face[1]], positions[face[2]]},
			[3]core.Vec3{normals[face[0]], normals[face[1]], normals[face[2]]},
			mat,
		)
	})

	maxAtLeaf := DefaultMaxAtLeaf
	if options != nil && options.MaxAtLeaf > 0 {
		maxAtLeaf = options.MaxAtLeaf
	}

	bvh, err := BuildBVH(lo.Map(meshTriangles, func(t *Triangle, _ int) Hittable { return t }), maxAtLeaf)
	if err != nil {
		return nil, errors.Wrap(err, "building mesh BVH")
	}

	return &Mesh{triangles: meshTriangles, bvh: bvh}, nil
}

// MustNewMesh is like NewMesh but panics on error
func MustNewMesh(vertices []core.Vec3, faces []int, mat material.Material, options *MeshOptions) *Mesh {
	mesh, err := NewMesh(vertices, faces, mat, options)
	if err != nil {
		panic(err)
	}
	return mesh
}

func transformVertices(vertices []core.Vec3, options *MeshOptions) []core.Vec3 {
	if options == nil {
		return vertices
	}

	scale := options.Scale
	if scale == 0 {
		scale = 1
	}

	out := make([]core.Vec3, len(vertices))
	for i, vertex := range vertices {
		vertex = vertex.Multiply(scale)
		if options.Rotation != nil {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = vertex.Rotate(*options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
		}
		out[i] = vertex.Add(options.Translate)
	}
	return out
}

// Hit forwards to the mesh BVH
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	return m.bvh.Hit(ray, tMin, tMax, rec)
}

// BoundingBox returns the box of the whole mesh
func (m *Mesh) BoundingBox() (core.AABB, bool) {
	return m.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the mesh triangles
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}
