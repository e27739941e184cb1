package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewMetal creates a perfect mirror material
func NewMetal(albedo core.Vec3) Material {
	return Material{Kind: KindMetal, Albedo: albedo}
}

func (m Material) shadeMetal(tracer Tracer, rayIn core.Ray, hit *HitRecord, depth int) core.Vec3 {
	normal := hit.Normal()
	reflected := core.Reflect(rayIn.Direction, normal)

	// Reflection into the surface is absorbed
	if reflected.Dot(normal) <= 0 {
		return core.Vec3{}
	}

	scattered := core.NewAttenuatedRay(hit.Point, reflected, m.Albedo)
	return m.Albedo.MultiplyVec(tracer.TraceRay(scattered, depth-1))
}
