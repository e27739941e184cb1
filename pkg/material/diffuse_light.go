package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// NewDiffuseLight creates an emissive material. Paths end at emitters.
func NewDiffuseLight(emission core.Vec3) Material {
	return Material{Kind: KindDiffuseLight, Emission: emission}
}
