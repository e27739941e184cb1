package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// shadeLambertian scatters around the normal by adding a uniform unit-sphere
// direction to it, which approximates a cosine distribution.
func (m Material) shadeLambertian(tracer Tracer, hit *HitRecord, depth int, sampler core.Sampler) core.Vec3 {
	normal := hit.Normal()
	direction := normal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// Catch degenerate scatter direction
	if direction.NearZero() {
		direction = normal
	}

	scattered := core.NewAttenuatedRay(hit.Point, direction, m.Albedo)
	return m.Albedo.MultiplyVec(tracer.TraceRay(scattered, depth-1))
}
