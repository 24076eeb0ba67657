package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{Kind: KindLambertian, Albedo: albedo}
}

// scatterLambertian bounces toward a random point in the unit sphere tangent to the hit point
func scatterLambertian(m *Material, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomInUnitSphere(sampler))
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}
