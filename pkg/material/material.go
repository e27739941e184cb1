package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Kind identifies one of the fixed set of material variants
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindTransparent
	KindDiffuseLight
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindTransparent:
		return "transparent"
	case KindDiffuseLight:
		return "diffuse_light"
	default:
		return "unknown"
	}
}

// Material is a closed set of surface models stored by value. Only the fields
// used by Kind are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian, Metal, Transparent
	Emission        core.Vec3 // DiffuseLight
	Reflectance     float64   // Transparent
	Transmittance   float64   // Transparent
	RefractiveIndex float64   // Transparent
}

// Tracer continues a light path. Materials call back into it for every
// secondary ray they spawn.
type Tracer interface {
	TraceRay(ray core.Ray, depth int) core.Vec3
}

// Shade returns the radiance leaving the hit point toward the incoming ray.
// depth is the remaining bounce budget of the current path; secondary rays
// are traced with depth-1.
func (m Material) Shade(tracer Tracer, rayIn core.Ray, hit *HitRecord, depth int, sampler core.Sampler) core.Vec3 {
	switch m.Kind {
	case KindLambertian:
		return m.shadeLambertian(tracer, hit, depth, sampler)
	case KindMetal:
		return m.shadeMetal(tracer, rayIn, hit, depth)
	case KindTransparent:
		return m.shadeTransparent(tracer, rayIn, hit, depth)
	case KindDiffuseLight:
		return m.Emission
	default:
		return core.Vec3{}
	}
}

// Color returns the base color of the material, used by direct lighting
func (m Material) Color() core.Vec3 {
	if m.Kind == KindDiffuseLight {
		return m.Emission
	}
	return m.Albedo
}

// HitRecord contains information about a ray-object intersection. It lives
// only for the duration of one shading call.
type HitRecord struct {
	Point         core.Vec3 // Point of intersection
	Ray           core.Ray  // Ray that produced the hit
	Distance      float64   // Parameter t along the ray
	OutwardNormal core.Vec3 // Geometric normal pointing out of the surface
	Material      Material  // Copy of the material of the hit object
}

// FrontFace reports whether the ray hit the outside of the surface
func (h *HitRecord) FrontFace() bool {
	return h.Ray.Direction.Dot(h.OutwardNormal) < 0
}

// Normal returns the outward normal flipped to face the incoming ray
func (h *HitRecord) Normal() core.Vec3 {
	if h.FrontFace() {
		return h.OutwardNormal
	}
	return h.OutwardNormal.Negate()
}
