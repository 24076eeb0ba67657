package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// HittableList aggregates hittables and reports the closest hit among them.
// Order does not change the result, only how quickly the interval narrows.
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of direct children
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit checks if a ray hits any object in the list
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, object := range l.Objects {
		if hit, isHit := Hit(object, ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// CountSpheres returns the number of spheres in the tree
func CountSpheres(h Hittable) int {
	switch obj := h.(type) {
	case *Sphere:
		return 1
	case *HittableList:
		total := 0
		for _, child := range obj.Objects {
			total += CountSpheres(child)
		}
		return total
	default:
		return 0
	}
}
