package material

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// NewDielectric creates a transparent material like glass that can both reflect and refract
func NewDielectric(refractionIndex float64) *Material {
	return &Material{Kind: KindDielectric, RefractionIndex: refractionIndex}
}

// scatterDielectric picks reflection or refraction with the Schlick reflectance as probability.
// Total internal reflection forces the reflected branch.
func scatterDielectric(m *Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	ri := m.RefractionIndex

	dDotN := rayIn.Direction.Dot(hit.Normal)
	length := rayIn.Direction.Length()

	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	if dDotN > 0 {
		// Ray is exiting the material (from glass to air)
		outwardNormal = hit.Normal.Negate()
		refractionRatio = ri
		cosine = ri * dDotN / length
	} else {
		// Ray is entering the material (from air to glass)
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / ri
		cosine = -dDotN / length
	}

	reflectProb := 1.0
	refracted, canRefract := Refract(rayIn.Direction, outwardNormal, refractionRatio)
	if canRefract {
		reflectProb = Schlick(cosine, ri)
	}

	direction := refracted
	if sampler.Get1D() < reflectProb {
		direction = Reflect(rayIn.Direction, hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Refract bends v across n using Snell's law with ratio ni/nt.
// It returns false on total internal reflection.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance for a given cosine and refraction index
func Schlick(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
