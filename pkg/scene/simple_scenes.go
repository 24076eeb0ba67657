package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewTwoSphereScene creates a diffuse sphere resting on a huge diffuse ground sphere
func NewTwoSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
		Aperture:    0.0,
	}

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	return &Scene{
		Name:         "two-spheres",
		World:        world,
		CameraConfig: applyCameraOverrides(defaultCameraConfig, cameraOverrides),
		SamplingConfig: SamplingConfig{
			Width:           200,
			Height:          100,
			SamplesPerPixel: 100,
			MaxDepth:        integrator.DefaultMaxDepth,
		},
	}
}

// NewMirrorScene places the camera inside a perfect mirror sphere that encloses a
// second mirror sphere. A reflection off the inside of the enclosing sphere faces
// away from its outward normal and is absorbed, so the image is black.
func NewMirrorScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60.0,
		AspectRatio: 1.0,
		Aperture:    0.0,
	}

	mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 10, mirror),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mirror),
	)

	return &Scene{
		Name:         "mirror",
		World:        world,
		CameraConfig: applyCameraOverrides(defaultCameraConfig, cameraOverrides),
		SamplingConfig: SamplingConfig{
			Width:           100,
			Height:          100,
			SamplesPerPixel: 10,
			MaxDepth:        integrator.DefaultMaxDepth,
		},
	}
}
