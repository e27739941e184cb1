// Package scene assembles renderable worlds: objects, camera, point lights
// and sky, along with the registry of built-in demo scenes.
package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         geometry.Camera
	CameraConfig   geometry.CameraConfig
	Objects        []geometry.Hittable // Objects in the scene, bounded or not
	Lights         []lights.Light      // Point lights, only used by direct lighting
	Sky            integrator.Sky
	Mode           integrator.Mode
	MaxAtLeaf      int // BVH leaf size, 0 selects geometry.DefaultMaxAtLeaf
	SamplingConfig SamplingConfig

	// Filled in by Preprocess
	BVH   *geometry.BVH
	World geometry.Hittable
}

// SamplingConfig holds the render settings a scene was tuned for
type SamplingConfig struct {
	Width        int // Image width
	Height       int // Image height
	SamplesLevel int // Samples per pixel axis, N² samples in total
	MaxDepth     int // Maximum ray bounce depth
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(position core.Vec3, weight float64) {
	s.Lights = append(s.Lights, lights.NewLight(position, weight))
}

// Preprocess builds the BVH over the bounded objects and assembles the world
// the integrator traces against. Unbounded objects such as planes are kept
// beside the BVH in a flat list.
func (s *Scene) Preprocess() error {
	if len(s.Objects) == 0 {
		return errors.Errorf("scene %q has no objects", s.Name)
	}

	bounded, unbounded := lo.FilterReject(s.Objects, func(obj geometry.Hittable, _ int) bool {
		_, ok := obj.BoundingBox()
		return ok
	})

	s.BVH = nil
	world := geometry.NewHittableList(unbounded...)
	if len(bounded) > 0 {
		maxAtLeaf := s.MaxAtLeaf
		if maxAtLeaf <= 0 {
			maxAtLeaf = geometry.DefaultMaxAtLeaf
		}
		bvh, err := geometry.BuildBVH(bounded, maxAtLeaf)
		if err != nil {
			return errors.Wrapf(err, "building BVH for scene %q", s.Name)
		}
		s.BVH = bvh
		world.Add(bvh)
	}
	s.World = world

	if s.Sky == nil {
		s.Sky = integrator.BlackSky
	}

	logger.Infof("scene %q: %d bounded objects, %d unbounded, %d primitives, %d point lights",
		s.Name, len(bounded), len(unbounded), s.PrimitiveCount(), len(s.Lights))
	return nil
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	return lo.SumBy(s.Objects, countPrimitives)
}

// countPrimitives counts primitives in a single object, expanding composites
func countPrimitives(obj geometry.Hittable) int {
	switch o := obj.(type) {
	case *geometry.Mesh:
		return o.TriangleCount()
	case *geometry.Rectangle:
		return 2
	case *geometry.TriangleList:
		return len(o.Triangles)
	case *geometry.HittableList:
		return lo.SumBy(o.Objects, countPrimitives)
	default:
		return 1
	}
}
