package geometry

import (
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Hittable is anything a ray can intersect. The set of implementations is closed:
// *Sphere and *HittableList.
type Hittable interface {
	hittable()
}

func (*Sphere) hittable()       {}
func (*HittableList) hittable() {}

// Hit returns the closest intersection of ray with h whose parameter lies strictly
// inside (tMin, tMax).
func Hit(h Hittable, ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch obj := h.(type) {
	case *Sphere:
		return obj.Hit(ray, tMin, tMax)
	case *HittableList:
		return obj.Hit(ray, tMin, tMax)
	default:
		panic(fmt.Sprintf("geometry: unsupported hittable %T", h))
	}
}
