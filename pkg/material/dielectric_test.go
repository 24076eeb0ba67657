package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestDielectric_AlwaysScatters(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	hit := HitRecord{
		T:        1.0,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: glass,
	}

	white := core.NewVec3(1, 1, 1)
	for i := 0; i < 10000; i++ {
		// Random incoming direction from anywhere, entering or exiting
		direction := core.RandomInUnitSphere(sampler)
		if direction.LengthSquared() < 1e-12 {
			continue
		}
		ray := core.NewRay(hit.Point.Subtract(direction), direction)

		result, scattered := Scatter(glass, ray, hit, sampler)
		if !scattered {
			t.Fatalf("Dielectric absorbed direction %v", direction)
		}
		if result.Attenuation != white {
			t.Fatalf("Expected attenuation %v, got %v", white, result.Attenuation)
		}
		if !result.Scattered.Direction.IsFinite() {
			t.Fatalf("Scattered direction %v is not finite", result.Scattered.Direction)
		}
	}
}

func TestDielectric_ReflectsAndRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	hasReflection := false
	hasRefraction := false
	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, _ := Scatter(glass, ray, hit, sampler)
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see reflection in at least some cases")
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	// Ray travelling from inside the glass, grazing the surface
	ray := core.NewRay(core.NewVec3(-1, -0.1, 0), core.NewVec3(1, 0.1, 0))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		result, scattered := Scatter(glass, ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		expected := Reflect(ray.Direction, hit.Normal)
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Expected forced reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestRefract(t *testing.T) {
	n := core.NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		refracted, ok := Refract(core.NewVec3(0, -2, 0), n, 1.0/1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if refracted.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-12 {
			t.Errorf("Expected (0,-1,0), got %v", refracted)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		ratio := 1.0 / 1.5
		incoming := core.NewVec3(1, -1, 0)
		refracted, ok := Refract(incoming, n, ratio)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinIn := math.Sqrt(0.5)
		sinOut := math.Abs(refracted.Normalize().X)
		if math.Abs(sinOut-ratio*sinIn) > 1e-9 {
			t.Errorf("Expected sin(out)=%f, got %f", ratio*sinIn, sinOut)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		if _, ok := Refract(core.NewVec3(1, -0.1, 0), n, 1.5); ok {
			t.Error("Expected total internal reflection")
		}
	})
}

func TestSchlick(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ri       float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.5, 1.0},
		{"matched index", 0.5, 1.0, 0.03125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Schlick(tt.cosine, tt.ri)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, result)
			}
		})
	}
}
