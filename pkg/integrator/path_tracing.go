package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

const (
	// ShadowAcneEpsilon is the lower bound of every intersection query. Scattered rays
	// start on a surface and rounding can place them just inside it.
	ShadowAcneEpsilon = 0.001

	// DefaultMaxDepth is the number of bounces after which a path contributes black
	DefaultMaxDepth = 50
)

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed depth cap
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// MaxDepth returns the bounce limit
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, 0, sampler)
}

// rayColor multiplies attenuation along the path until it escapes to the sky,
// is absorbed, or reaches the depth limit.
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := geometry.Hit(world, ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}

	if depth >= pt.maxDepth {
		return core.Vec3{}
	}

	scatter, didScatter := material.Scatter(hit.Material, ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, depth+1, sampler))
}

// BackgroundGradient blends from white at the horizon below to sky blue straight up
func BackgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Lerp(skyBlue, t)
}
