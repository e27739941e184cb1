package integrator

import (
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func TestShadeDirect(t *testing.T) {
	albedo := core.NewVec3(1, 0.5, 0.25)
	world := geometry.NewHittableList(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewLambertian(albedo)))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name   string
		lights []lights.Light
		want   core.Vec3
	}{
		{"Ambient only", nil, albedo.Multiply(AmbientWeight)},
		{
			"One overhead light",
			[]lights.Light{lights.NewLight(core.NewVec3(0, 10, 0), 1)},
			albedo.Multiply(AmbientWeight + lights.DiffuseWeight),
		},
		{
			"Weighted lights add up",
			[]lights.Light{lights.NewLight(core.NewVec3(0, 10, 0), 0.5), lights.NewLight(core.NewVec3(0, 5, 0), 0.25)},
			albedo.Multiply(AmbientWeight + 0.75*lights.DiffuseWeight),
		},
		{
			"Light under the floor",
			[]lights.Light{lights.NewLight(core.NewVec3(0, -10, 0), 1)},
			albedo.Multiply(AmbientWeight),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShadeDirect(ray, world, tt.lights, nil)
			if got.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestShadeDirect_MissUsesSky(t *testing.T) {
	world := geometry.NewHittableList()
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))

	if got := ShadeDirect(ray, world, nil, constantSky(core.NewVec3(0.1, 0.2, 0.3))); got != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected sky color, got %v", got)
	}
	if got := NewDirectLightingIntegrator(world, nil, nil).RayColor(ray, nil); got != (core.Vec3{}) {
		t.Errorf("Expected black without a sky, got %v", got)
	}
}
