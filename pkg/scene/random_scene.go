package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const (
	randomSceneGridMin     = -11
	randomSceneGridMax     = 11 // exclusive
	randomSceneSmallRadius = 0.2
)

// NewRandomSceneWorld builds the ground, a 22x22 grid of small jittered spheres and
// three large feature spheres. All random draws come from sampler, in grid order.
func NewRandomSceneWorld(sampler core.Sampler) *geometry.HittableList {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	// Small spheres keep clear of the metal feature sphere at (4,1,0)
	clearance := core.NewVec3(4, 0.2, 0)
	r := sampler.Get1D

	for a := randomSceneGridMin; a < randomSceneGridMax; a++ {
		for b := randomSceneGridMin; b < randomSceneGridMax; b++ {
			chooseMat := r()
			center := core.NewVec3(float64(a)+0.9*r(), randomSceneSmallRadius, float64(b)+0.9*r())
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var mat *material.Material
			switch {
			case chooseMat < 0.8: // diffuse
				mat = material.NewLambertian(core.NewVec3(r()*r(), r()*r(), r()*r()))
			case chooseMat < 0.95: // metal
				mat = material.NewMetal(core.NewVec3(0.5*(1+r()), 0.5*(1+r()), 0.5*(1+r())), 0.5*r())
			default: // glass
				mat = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, randomSceneSmallRadius, mat))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return world
}

// NewRandomScene creates the random sphere field viewed from (16,2,4), focused on the
// metal sphere. The same seed always produces the same world.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	lookFrom := core.NewVec3(16, 2, 4)
	focalPoint := core.NewVec3(4, 1, 0)

	defaultCameraConfig := renderer.CameraConfig{
		Center:        lookFrom,
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          15.0,
		AspectRatio:   2.0,
		Aperture:      1.0 / 16.0,
		FocusDistance: core.NewRayThrough(lookFrom, focalPoint).Direction.Length(),
	}

	return &Scene{
		Name:         "random",
		World:        NewRandomSceneWorld(core.NewSeededSampler(seed)),
		CameraConfig: applyCameraOverrides(defaultCameraConfig, cameraOverrides),
		SamplingConfig: SamplingConfig{
			Width:           200,
			Height:          100,
			SamplesPerPixel: 100,
			MaxDepth:        integrator.DefaultMaxDepth,
		},
	}
}
