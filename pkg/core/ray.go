package core

// Ray represents a ray with an origin and a unit-length direction. A ray
// spawned by a scatter event carries the attenuation of the surface it left.
type Ray struct {
	Origin      Vec3
	Direction   Vec3
	Attenuation Vec3 // Valid only when Attenuated is true
	Attenuated  bool
}

// NewRay creates a new ray; the direction is normalized
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewAttenuatedRay creates a ray carrying an attenuation color
func NewAttenuatedRay(origin, direction, attenuation Vec3) Ray {
	return Ray{
		Origin:      origin,
		Direction:   direction.Normalize(),
		Attenuation: attenuation,
		Attenuated:  true,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
