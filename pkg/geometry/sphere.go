package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	if !(radius > 0) {
		panic(fmt.Sprintf("geometry: sphere radius must be positive, got %g", radius))
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic a*t^2 + 2b*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - a*c
	if discriminant <= 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	if root := (-b - sqrtD) / a; root > tMin && root < tMax {
		return s.record(ray, root), true
	}
	if root := (-b + sqrtD) / a; root > tMin && root < tMax {
		return s.record(ray, root), true
	}

	return material.HitRecord{}, false
}

func (s *Sphere) record(ray core.Ray, t float64) material.HitRecord {
	point := ray.At(t)
	return material.HitRecord{
		T:        t,
		Point:    point,
		Normal:   point.Subtract(s.Center).Divide(s.Radius),
		Material: s.Material,
	}
}
