package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

var (
	groundGreen = core.ColorFromRGB(58, 222, 99)
	purple      = core.ColorFromRGB(194, 90, 250)
	pink        = core.ColorFromRGB(242, 78, 190)
	orange      = core.ColorFromRGB(242, 181, 75)
	clearGlass  = material.NewTransparent(white, 0.1, 0.9, 1.3)
	whiteMirror = material.NewMetal(white)
)

const defaultDepth = 50

// newScene creates a scene with a camera sized for opts
func newScene(opts Options, position, lookAt core.Vec3, vFov float64, sky integrator.Sky) *Scene {
	config := geometry.CameraConfig{
		Position:    position,
		LookAt:      lookAt,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        vFov,
		AspectRatio: float64(opts.Width) / float64(opts.Height),
	}
	var camera geometry.Camera = geometry.NewPerspectiveCamera(config)
	if opts.Orthographic {
		camera = geometry.NewOrthographicCamera(config)
	}
	return &Scene{
		Camera:       camera,
		CameraConfig: config,
		Sky:          sky,
		Mode:         integrator.ModePath,
		SamplingConfig: SamplingConfig{
			Width:        opts.Width,
			Height:       opts.Height,
			SamplesLevel: 8,
			MaxDepth:     defaultDepth,
		},
	}
}

// groundPlane returns the horizontal plane y = -1
func groundPlane(albedo core.Vec3) *geometry.Plane {
	return geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), material.NewLambertian(albedo))
}

// NewSimplePrimitivesScene shows every primitive type and every non-emissive
// material in one frame
func NewSimplePrimitivesScene(opts Options) (*Scene, error) {
	s := newScene(opts, core.NewVec3(-1, 0.2, 4), core.NewVec3(0, 0.1, 0), 35, SunsetSky(1))

	s.Add(
		geometry.NewSphere(core.NewVec3(0.2, 0.4, -1), 0.5, clearGlass),
		geometry.NewSphere(core.NewVec3(-0.5, 1, -2), 0.6, material.NewLambertian(orange)),
		geometry.NewSphere(core.NewVec3(0, -5.5, -3), 5, material.NewLambertian(pink)),
		geometry.NewSphere(core.NewVec3(3, -2, -7), 2, material.NewLambertian(purple)),
		geometry.NewTriangle(
			core.NewVec3(0.5, -0.5, -1),
			core.NewVec3(-0.5, 0.75, -2.5),
			core.NewVec3(-1.5, -0.2, -1),
			material.NewMetal(orange),
		),
		groundPlane(groundGreen),
	)
	return s, nil
}

// NewRectangleLightScene lights two spheres with a rectangular emitter under
// a dim sky
func NewRectangleLightScene(opts Options) (*Scene, error) {
	s := newScene(opts, core.NewVec3(-1, 0.2, 2), core.NewVec3(0.1, 0.3, 0), 35, SunsetSky(0.1))
	s.SamplingConfig.SamplesLevel = 16

	s.Add(
		geometry.NewSphere(core.NewVec3(2, 0.5, -3.5), 0.5, material.NewLambertian(purple)),
		geometry.NewSphere(core.NewVec3(4, 0, -3), 0.5, clearGlass),
		groundPlane(groundGreen),
		geometry.NewRectangle([4]core.Vec3{
			core.NewVec3(3, 2, -2),
			core.NewVec3(5, 2, -2),
			core.NewVec3(5, 2, -4),
			core.NewVec3(3, 2, -4),
		}, material.NewDiffuseLight(white.Multiply(5))),
	)
	return s, nil
}

// NewMirrorHallwayScene places a small ball between two long parallel
// mirrors, producing a receding series of reflections
func NewMirrorHallwayScene(opts Options) (*Scene, error) {
	s := newScene(opts, core.NewVec3(0, 1, 1), core.NewVec3(0, 1.1, 0), 35, SunsetSky(1))

	wall := func(x float64) *geometry.Rectangle {
		return geometry.NewRectangle([4]core.Vec3{
			core.NewVec3(x, 2, 0),
			core.NewVec3(x, 2, -100),
			core.NewVec3(x, 0, -100),
			core.NewVec3(x, 0, 0),
		}, whiteMirror)
	}

	s.Add(
		wall(-2),
		wall(2),
		geometry.NewSphere(core.NewVec3(0, 1, -20), 0.5, material.NewLambertian(core.ColorFromRGB(0, 255, 0))),
		geometry.NewSphere(core.NewVec3(0, 10, -15), 5, whiteMirror),
	)
	return s, nil
}

// NewSingleSphereScene is a minimal scene: one diffuse sphere straight ahead
// of a camera looking down -z
func NewSingleSphereScene(opts Options) (*Scene, error) {
	s := newScene(opts, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 90, GradientSky)
	s.SamplingConfig.SamplesLevel = 2
	s.SamplingConfig.MaxDepth = 8

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s, nil
}
