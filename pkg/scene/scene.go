package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.HittableList // Objects in the scene, scanned linearly
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the scene's default image settings
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// NewCamera builds the camera described by the scene's camera config
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the total number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return geometry.CountSpheres(s.World)
}

// applyCameraOverrides merges any overrides into the scene default
func applyCameraOverrides(base renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	for _, override := range overrides {
		base = renderer.MergeCameraConfig(base, override)
	}
	return base
}
