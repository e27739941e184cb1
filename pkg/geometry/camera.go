package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Camera generates primary rays for normalized image coordinates u, v in
// [0, 1], with (0, 0) at the lower left corner of the image
type Camera interface {
	GetRay(u, v float64) core.Ray
	MoveCamera(position, lookAt, up core.Vec3, vFov, aspectRatio float64)
}

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// viewport is the image plane shared by both projections
type viewport struct {
	origin          core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	lowerLeftCorner core.Vec3
	into            core.Vec3 // Unit vector from the look-at point toward the eye
}

func newViewport(position, lookAt, up core.Vec3, vFov, aspectRatio float64) viewport {
	h := math.Tan(vFov * math.Pi / 180 / 2)
	height := 2.0 * h
	width := aspectRatio * height

	into := position.Subtract(lookAt).Normalize()
	horizontalDir := up.Cross(into).Normalize()
	verticalDir := into.Cross(horizontalDir)

	horizontal := horizontalDir.Multiply(width)
	vertical := verticalDir.Multiply(height)
	return viewport{
		origin:     position,
		horizontal: horizontal,
		vertical:   vertical,
		lowerLeftCorner: position.
			Subtract(horizontal.Multiply(0.5)).
			Subtract(vertical.Multiply(0.5)),
		into: into,
	}
}

// PerspectiveCamera is a pinhole camera with the image plane one unit in
// front of the eye
type PerspectiveCamera struct {
	viewport
}

// NewPerspectiveCamera creates a perspective camera
func NewPerspectiveCamera(config CameraConfig) *PerspectiveCamera {
	c := &PerspectiveCamera{}
	c.MoveCamera(config.Position, config.LookAt, config.Up, config.VFov, config.AspectRatio)
	return c
}

// MoveCamera recomputes the camera basis and image plane
func (c *PerspectiveCamera) MoveCamera(position, lookAt, up core.Vec3, vFov, aspectRatio float64) {
	c.viewport = newViewport(position, lookAt, up, vFov, aspectRatio)
	c.lowerLeftCorner = c.lowerLeftCorner.Subtract(c.into)
}

// GetRay generates a ray through image coordinates (u, v)
func (c *PerspectiveCamera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// OrthographicCamera casts parallel rays from an image plane through the eye
// position. The field of view only sets the plane size.
type OrthographicCamera struct {
	viewport
	direction core.Vec3
}

// NewOrthographicCamera creates an orthographic camera
func NewOrthographicCamera(config CameraConfig) *OrthographicCamera {
	c := &OrthographicCamera{}
	c.MoveCamera(config.Position, config.LookAt, config.Up, config.VFov, config.AspectRatio)
	return c
}

// MoveCamera recomputes the camera basis and image plane
func (c *OrthographicCamera) MoveCamera(position, lookAt, up core.Vec3, vFov, aspectRatio float64) {
	c.viewport = newViewport(position, lookAt, up, vFov, aspectRatio)
	c.direction = lookAt.Subtract(position)
}

// GetRay generates a ray from image coordinates (u, v) along the view direction
func (c *OrthographicCamera) GetRay(u, v float64) core.Ray {
	origin := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v))

	return core.NewRay(origin, c.direction)
}
