package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

const cameraTolerance = 1e-9

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func TestCamera_BasisMatchesLookAt(t *testing.T) {
	tests := []struct {
		name   string
		from   core.Vec3
		lookAt core.Vec3
		up     core.Vec3
	}{
		{"Forward", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)},
		{"RandomSceneView", core.NewVec3(16, 2, 4), core.NewVec3(0, 0.5, 0), core.NewVec3(0, 1, 0)},
		{"TiltedUp", core.NewVec3(-2, 2, 1), core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := NewCamera(CameraConfig{
				Center:      tt.from,
				LookAt:      tt.lookAt,
				Up:          tt.up,
				VFov:        45,
				AspectRatio: 2,
			})
			u, v, w := camera.Basis()

			// Rows of the view matrix rotation are right, up and backward
			view := mgl64.LookAtV(toMgl(tt.from), toMgl(tt.lookAt), toMgl(tt.up))
			rows := []core.Vec3{u, v, w}
			for row, got := range rows {
				expected := core.NewVec3(view.At(row, 0), view.At(row, 1), view.At(row, 2))
				if !vecNear(got, expected, cameraTolerance) {
					t.Errorf("Basis row %d: expected %v, got %v", row, expected, got)
				}
			}

			if math.Abs(u.Dot(v)) > cameraTolerance || math.Abs(u.Dot(w)) > cameraTolerance || math.Abs(v.Dot(w)) > cameraTolerance {
				t.Errorf("Basis is not orthogonal: u=%v v=%v w=%v", u, v, w)
			}
		})
	}
}

func TestCamera_PinholeRays(t *testing.T) {
	// vfov 90 gives a half height of 1 at the unit focus distance
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	})
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"Center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"LowerLeft", 0, 0, core.NewVec3(-2, -1, -1)},
		{"UpperRight", 1, 1, core.NewVec3(2, 1, -1)},
		{"UpperLeft", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !vecNear(ray.Origin, core.Vec3{}, cameraTolerance) {
				t.Errorf("Pinhole ray should start at the camera, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.direction, cameraTolerance) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_LensJitter(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1.5,
		Aperture:      2,
		FocusDistance: 5,
	})
	if camera.LensRadius() != 1 {
		t.Fatalf("Expected lens radius 1, got %f", camera.LensRadius())
	}

	sampler := core.NewSeededSampler(7)
	focusPoint := core.NewVec3(0, 0, -5)
	moved := false

	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		if ray.Origin.Length() >= 1 {
			t.Fatalf("Lens offset %v outside lens radius", ray.Origin)
		}
		if math.Abs(ray.Origin.Z) > cameraTolerance {
			t.Fatalf("Lens offset %v leaves the lens plane", ray.Origin)
		}
		if ray.Origin.LengthSquared() > 0 {
			moved = true
		}

		// Every lens sample converges on the same point of the focal plane
		if target := ray.Origin.Add(ray.Direction); !vecNear(target, focusPoint, 1e-9) {
			t.Fatalf("Expected ray through %v, got %v", focusPoint, target)
		}
	}

	if !moved {
		t.Error("Expected lens sampling to move the ray origin")
	}
}

func TestCamera_FocusDistanceDefaultsToLookAt(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
		Aperture:    0.5,
	})
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if target := ray.Origin.Add(ray.Direction); !vecNear(target, core.Vec3{}, 1e-9) {
			t.Fatalf("Expected rays to focus on the look-at point, got %v", target)
		}
	}
}

func TestNewCamera_Panics(t *testing.T) {
	tests := []struct {
		name   string
		config CameraConfig
	}{
		{"LookAtEqualsCenter", CameraConfig{
			Center: core.NewVec3(1, 1, 1), LookAt: core.NewVec3(1, 1, 1), Up: core.NewVec3(0, 1, 0), VFov: 45, AspectRatio: 1,
		}},
		{"UpParallelToView", CameraConfig{
			Center: core.NewVec3(0, 5, 0), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0), VFov: 45, AspectRatio: 1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected NewCamera to panic")
				}
			}()
			NewCamera(tt.config)
		})
	}
}

func TestValidateCameraConfig(t *testing.T) {
	tests := []struct {
		name    string
		center  core.Vec3
		up      core.Vec3
		wantErr bool
	}{
		{"Valid", core.NewVec3(0, 0, 5), core.NewVec3(0, 1, 0), false},
		{"LookAtEqualsCenter", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), true},
		{"UpParallelToView", core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0), true},
		{"UpOppositeToView", core.NewVec3(0, 5, 0), core.NewVec3(0, -2, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCameraConfig(CameraConfig{
				Center: tt.center, LookAt: core.NewVec3(0, 0, 0), Up: tt.up, VFov: 45, AspectRatio: 1,
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCameraConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Center:        core.NewVec3(16, 2, 4),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          15,
		AspectRatio:   2,
		Aperture:      0.0625,
		FocusDistance: 12,
	}

	t.Run("EmptyOverride", func(t *testing.T) {
		if got := MergeCameraConfig(base, CameraConfig{}); got != base {
			t.Errorf("Expected base config, got %+v", got)
		}
	})

	t.Run("PartialOverride", func(t *testing.T) {
		got := MergeCameraConfig(base, CameraConfig{
			Center:   core.NewVec3(0, 0, 10),
			VFov:     60,
			Aperture: 0.2,
		})

		expected := base
		expected.Center = core.NewVec3(0, 0, 10)
		expected.VFov = 60
		expected.Aperture = 0.2
		if got != expected {
			t.Errorf("Expected %+v, got %+v", expected, got)
		}
	})
}
