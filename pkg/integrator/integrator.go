package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray, bouncing at most depth times
	RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int) core.Color
}
