package integrator

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// countingSampler records how many draws the integrator made
type countingSampler struct {
	inner core.Sampler
	draws int
}

func (c *countingSampler) Get1D() float64 { c.draws++; return c.inner.Get1D() }
func (c *countingSampler) Get2D() core.Vec2 {
	c.draws++
	return c.inner.Get2D()
}
func (c *countingSampler) Get3D() core.Vec3 {
	c.draws++
	return c.inner.Get3D()
}

func newSampler() *countingSampler {
	return &countingSampler{inner: core.NewRandomSampler(rand.New(rand.NewSource(42)))}
}

func TestBackgroundGradient(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon is halfway", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
		{"direction length is ignored", core.NewVec3(0, 7, 0), core.NewVec3(0.5, 0.7, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := BackgroundGradient(core.NewRay(core.NewVec3(0, 0, 0), tt.direction))
			if color.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestRayColor_MissReturnsSky(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	world := geometry.NewHittableList()
	sampler := newSampler()

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), world, sampler)
	if color.Subtract(core.NewVec3(0.5, 0.7, 1.0)).Length() > 1e-12 {
		t.Errorf("Expected sky color, got %v", color)
	}
	if sampler.draws != 0 {
		t.Errorf("A miss should not consume random numbers, used %d", sampler.draws)
	}
}

func TestRayColor_DepthLimitReturnsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9))),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	sampler := newSampler()

	color := pt.rayColor(ray, world, DefaultMaxDepth, sampler)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black at depth limit, got %v", color)
	}
	if sampler.draws != 0 {
		t.Errorf("Depth limit should stop before scattering, but sampler was used %d times", sampler.draws)
	}

	// One level below the limit still scatters
	pt.rayColor(ray, world, DefaultMaxDepth-1, sampler)
	if sampler.draws == 0 {
		t.Error("Expected scattering below the depth limit")
	}
}

func TestRayColor_AbsorbedReturnsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	// Metal with maximum fuzz hit at a grazing angle absorbs often; find one absorption
	metal := material.NewMetal(core.NewVec3(1, 1, 1), 1.0)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, metal))
	ray := core.NewRay(core.NewVec3(-10, 0.01, 0), core.NewVec3(1, -0.001, 0))
	sampler := newSampler()

	sawBlack := false
	for i := 0; i < 200 && !sawBlack; i++ {
		if pt.RayColor(ray, world, sampler) == (core.Vec3{}) {
			sawBlack = true
		}
	}
	if !sawBlack {
		t.Error("Expected at least one absorbed path to return black")
	}
}

func TestRayColor_AttenuationMultiplies(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	// A perfect mirror facing up reflects the camera ray straight into the sky
	albedo := core.NewVec3(0.5, 0.25, 1.0)
	mirror := material.NewMetal(albedo, 0)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, mirror))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	color := pt.RayColor(ray, world, newSampler())
	expected := albedo.MultiplyVec(core.NewVec3(0.5, 0.7, 1.0))
	if color.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRayColor_MirrorInsideMirrorIsAbsorbed(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)
	outer := geometry.NewSphere(core.NewVec3(0, 0, 0), 10, mirror)
	inner := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mirror)
	world := geometry.NewHittableList(outer, inner)
	sampler := newSampler()

	for i := 0; i < 100; i++ {
		direction := core.RandomInUnitSphere(sampler)
		ray := core.NewRay(core.NewVec3(0, 5, 0), direction)
		color := pt.RayColor(ray, world, sampler)
		// The enclosing sphere absorbs every ray that reaches it from inside
		if color != (core.Vec3{}) {
			t.Fatalf("Expected black from enclosed mirrors, got %v", color)
		}
	}
}

func TestRayColor_LambertianStaysInRange(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultMaxDepth)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewDielectric(1.5)),
	)
	sampler := newSampler()

	for i := 0; i < 500; i++ {
		direction := core.NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, -1)
		color := pt.RayColor(core.NewRay(core.NewVec3(0, 0.5, 1), direction), world, sampler)
		for _, c := range []float64{color.X, color.Y, color.Z} {
			if c < 0 || c > 1 {
				t.Fatalf("Color channel %f outside [0,1]", c)
			}
		}
	}
}

func TestNewPathTracingIntegrator_DefaultDepth(t *testing.T) {
	if d := NewPathTracingIntegrator(0).MaxDepth(); d != DefaultMaxDepth {
		t.Errorf("Expected default depth %d, got %d", DefaultMaxDepth, d)
	}
	if d := NewPathTracingIntegrator(5).MaxDepth(); d != 5 {
		t.Errorf("Expected depth 5, got %d", d)
	}
}
