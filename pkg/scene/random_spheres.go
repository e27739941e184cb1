package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Layout of the random sphere field
const (
	randomSphereCount  = 10000
	randomSphereRadius = 1.0
	randomXExtent      = 90.0
	randomYExtent      = 50.0
	randomZClose       = -125.0
	randomZFar         = randomZClose - 30.0
	randomMaxAtLeaf    = 20
)

// NewRandomSpheresScene scatters ten thousand unit spheres with random
// albedos in a slab in front of the camera and shades them with the direct
// lighting model and a single point light. The layout is reproducible for a
// given seed.
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	s := newScene(opts, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 45, GradientSky)
	s.Mode = integrator.ModeDirect
	s.MaxAtLeaf = randomMaxAtLeaf
	s.SamplingConfig.SamplesLevel = 1

	random := rand.New(rand.NewSource(opts.Seed))
	for i := 0; i < randomSphereCount; i++ {
		center := core.NewVec3(
			2*randomXExtent*random.Float64()-randomXExtent,
			2*randomYExtent*random.Float64()-randomYExtent,
			(randomZFar-randomZClose)*random.Float64()+randomZClose,
		)
		albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
		s.Add(geometry.NewSphere(center, randomSphereRadius, material.NewLambertian(albedo)))
	}

	s.AddLight(core.NewVec3(50, 50, -50), 1)
	return s, nil
}
