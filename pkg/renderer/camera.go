package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 = pinhole
	FocusDistance float64   // Distance to the focal plane, <= 0 = distance to LookAt
}

// Camera generates rays for rendering with depth of field
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// ValidateCameraConfig reports a configuration that does not define a view basis
func ValidateCameraConfig(config CameraConfig) error {
	view := config.Center.Subtract(config.LookAt)
	if view.LengthSquared() == 0 {
		return fmt.Errorf("camera position %v equals look-at point", config.Center)
	}
	if config.Up.Cross(view).LengthSquared() == 0 {
		return fmt.Errorf("camera up %v is parallel to view direction", config.Up)
	}
	return nil
}

// NewCamera creates a camera from the given configuration.
// It panics when the configuration does not define a view basis.
func NewCamera(config CameraConfig) *Camera {
	if err := ValidateCameraConfig(config); err != nil {
		panic("renderer: " + err.Error())
	}
	view := config.Center.Subtract(config.LookAt)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = view.Length()
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Orthonormal basis
	w := view.Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower left corner. The origin is jittered across the lens disk.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Basis returns the camera's orthonormal basis (u right, v up, w backward)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// MergeCameraConfig merges a partial camera config with a base config.
// Only non-zero values in the override are applied.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}
