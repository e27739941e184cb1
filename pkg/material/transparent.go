package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewTransparent creates a material that both reflects and refracts. The
// reflectance and transmittance are fixed coefficients, not a Fresnel term.
func NewTransparent(albedo core.Vec3, reflectance, transmittance, refractiveIndex float64) Material {
	return Material{
		Kind:            KindTransparent,
		Albedo:          albedo,
		Reflectance:     reflectance,
		Transmittance:   transmittance,
		RefractiveIndex: refractiveIndex,
	}
}

func (m Material) shadeTransparent(tracer Tracer, rayIn core.Ray, hit *HitRecord, depth int) core.Vec3 {
	reflectedDir := core.Reflect(rayIn.Direction, hit.Normal())
	reflectedRay := core.NewAttenuatedRay(hit.Point, reflectedDir, m.Albedo)
	reflectedColor := tracer.TraceRay(reflectedRay, depth-1)

	refractedDir, eta, ok := Refract(rayIn.Direction, hit.OutwardNormal, m.RefractiveIndex)
	if !ok {
		// Total internal reflection
		return reflectedColor
	}

	refractedRay := core.NewAttenuatedRay(hit.Point, refractedDir, m.Albedo)
	refractedColor := tracer.TraceRay(refractedRay, depth-1)

	cosReflected := math.Abs(hit.OutwardNormal.Dot(reflectedRay.Direction))
	cosRefracted := math.Abs(hit.OutwardNormal.Dot(refractedRay.Direction))

	return m.branch(m.Reflectance, cosReflected, reflectedColor).
		Add(m.branch(m.Transmittance/(eta*eta), cosRefracted, refractedColor))
}

// branch weighs the radiance gathered along one branch. The weight is the
// coefficient normalized by the branch cosine, projected back by that cosine.
func (m Material) branch(coefficient, cosine float64, radiance core.Vec3) core.Vec3 {
	if cosine < core.ParallelEpsilon {
		return core.Vec3{}
	}
	weight := m.Albedo.Multiply(coefficient / cosine)
	return weight.MultiplyVec(radiance).Multiply(cosine)
}

// TotalInternalReflection reports whether Snell's law has no solution for a
// ray travelling along direction across a surface with the given outward normal
func TotalInternalReflection(direction, outwardNormal core.Vec3, refractiveIndex float64) bool {
	_, _, ok := Refract(direction, outwardNormal, refractiveIndex)
	return !ok
}

// Refract bends direction through a surface with the given outward normal.
// Rays leaving the medium (against the outward normal) use the inverted index.
// It returns the refracted unit direction, the relative index eta that was
// applied, and false when refraction is impossible.
func Refract(direction, outwardNormal core.Vec3, refractiveIndex float64) (core.Vec3, float64, bool) {
	normal := outwardNormal
	eta := refractiveIndex
	cosI := normal.Dot(direction.Negate())

	if cosI < 0 {
		cosI = -cosI
		normal = normal.Negate()
		eta = 1.0 / eta
	}

	k := 1.0 - (1.0-cosI*cosI)/(eta*eta)
	if k < 0 {
		return core.Vec3{}, eta, false
	}

	cosT := math.Sqrt(k)
	refracted := direction.Divide(eta).Subtract(normal.Multiply(cosT - cosI/eta))
	return refracted.Normalize(), eta, true
}
