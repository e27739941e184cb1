package scene

import (
	"path/filepath"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/pkg/errors"
)

// ErrModelRequired is returned by mesh scenes built without a model path
var ErrModelRequired = errors.New("scene requires a model path")

const meshMaxAtLeaf = 32

// loadModel reads vertices and triangle indices, choosing the loader by
// file extension. Anything other than .ply is read as OBJ.
func loadModel(path string) ([]core.Vec3, []int, error) {
	if strings.EqualFold(filepath.Ext(path), ".ply") {
		data, err := loaders.LoadPLY(path)
		if err != nil {
			return nil, nil, err
		}
		return data.Vertices, data.Faces, nil
	}
	data, err := loaders.LoadOBJ(path)
	if err != nil {
		return nil, nil, err
	}
	return data.Vertices, data.Faces, nil
}

// loadMesh reads the model named in opts and wraps it in a glass mesh
func loadMesh(opts Options) (*geometry.Mesh, error) {
	if opts.ModelPath == "" {
		return nil, ErrModelRequired
	}
	vertices, faces, err := loadModel(opts.ModelPath)
	if err != nil {
		return nil, err
	}

	mesh, err := geometry.NewMesh(vertices, faces, clearGlass, &geometry.MeshOptions{
		MaxAtLeaf: meshMaxAtLeaf,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "creating mesh from %s", opts.ModelPath)
	}
	logger.Infof("mesh %s: %d triangles", opts.ModelPath, mesh.TriangleCount())
	return mesh, nil
}

// NewMeshCausticScene places a glass model over a gray floor beneath a
// rectangular light, so the floor shows the light focused through the glass
func NewMeshCausticScene(opts Options) (*Scene, error) {
	mesh, err := loadMesh(opts)
	if err != nil {
		return nil, err
	}

	s := newScene(opts, core.NewVec3(5, 2, 20), core.NewVec3(0, 1.5, 0), 30, SunsetSky(0.1))
	s.MaxAtLeaf = meshMaxAtLeaf
	s.SamplingConfig.SamplesLevel = 16

	gray := core.ColorFromRGB(128, 128, 128)
	s.Add(
		mesh,
		groundPlane(gray),
		geometry.NewRectangle([4]core.Vec3{
			core.NewVec3(-3, 5, -3),
			core.NewVec3(3, 5, -3),
			core.NewVec3(3, 5, 3),
			core.NewVec3(-3, 5, 3),
		}, material.NewDiffuseLight(white.Multiply(5))),
	)
	return s, nil
}

// NewMeshSkyScene views a glass model from above and to the right against a
// red sky, with nothing else in the world
func NewMeshSkyScene(opts Options) (*Scene, error) {
	mesh, err := loadMesh(opts)
	if err != nil {
		return nil, err
	}

	s := newScene(opts, core.NewVec3(3, 3, 3), core.NewVec3(0, 0, 0), 18, GentleRedSky)
	s.MaxAtLeaf = meshMaxAtLeaf
	s.Add(mesh)
	return s, nil
}
