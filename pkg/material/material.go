package material

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Material is a closed set of surface models. Only the fields relevant to Kind are set.
// Materials are built once with the New* constructors and shared read-only by spheres.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal
	Fuzz            float64   // Metal: 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractionIndex float64   // Dielectric
}

// Scatter decides how rayIn leaves the surface described by hit.
// It returns false when the ray is absorbed.
func Scatter(m *Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return scatterLambertian(m, hit, sampler)
	case KindMetal:
		return scatterMetal(m, rayIn, hit, sampler)
	case KindDielectric:
		return scatterDielectric(m, rayIn, hit, sampler)
	default:
		panic(fmt.Sprintf("material: unknown kind %v", m.Kind))
	}
}

// String describes the material for logs
func (m *Material) String() string {
	switch m.Kind {
	case KindMetal:
		return fmt.Sprintf("metal{albedo=%v fuzz=%g}", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric{ri=%g}", m.RefractionIndex)
	default:
		return fmt.Sprintf("%v{albedo=%v}", m.Kind, m.Albedo)
	}
}
