package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// GridConfig controls how the small spheres of the random scene are scattered
type GridConfig struct {
	Min               int     // First grid coordinate on each axis (inclusive)
	Max               int     // Last grid coordinate on each axis (exclusive)
	SmallRadius       float64 // Radius of every small sphere, also its height above y=0
	Jitter            float64 // Maximum random offset of a sphere within its cell
	DiffuseThreshold  float64 // Material draws below this are diffuse
	MetalThreshold    float64 // Material draws below this (and above DiffuseThreshold) are metal, the rest glass
	ExclusionDistance float64 // Small spheres closer than this to an exclusion center are skipped
	ExclusionCenters  []core.Point3
}

// DefaultGridConfig returns a 22x22 grid kept clear of the three large spheres
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Min:               -11,
		Max:               11,
		SmallRadius:       0.2,
		Jitter:            0.9,
		DiffuseThreshold:  0.8,
		MetalThreshold:    0.95,
		ExclusionDistance: 0.9,
		ExclusionCenters: []core.Point3{
			core.NewVec3(0, 0.2, 0),
			core.NewVec3(-4, 0.2, 0),
			core.NewVec3(4, 0.2, 0),
		},
	}
}

// DefaultRandomCameraConfig looks at the origin from (13,2,3) with a slight defocus blur
func DefaultRandomCameraConfig(aspectRatio float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}

// NewRandomScene creates the ground sphere, the random grid of small spheres and
// the three large spheres, one of each material
func NewRandomScene(sampler core.Sampler, grid GridConfig, aspectRatio float64) *Scene {
	s := newScene(DefaultRandomCameraConfig(aspectRatio))

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	PopulateRandomWorld(s.World, sampler, grid)

	s.World.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.3)),
	)

	return s
}

// PopulateRandomWorld adds one small sphere per grid cell unless it lands too close
// to an exclusion center. Small spheres are not checked against each other.
// It returns the number of spheres added.
func PopulateRandomWorld(world *geometry.HittableList, sampler core.Sampler, grid GridConfig) int {
	added := 0
	for a := grid.Min; a < grid.Max; a++ {
		for b := grid.Min; b < grid.Max; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+grid.Jitter*sampler.Get1D(),
				grid.SmallRadius,
				float64(b)+grid.Jitter*sampler.Get1D(),
			)

			if !grid.clearOfExclusions(center) {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMat < grid.DiffuseThreshold:
				albedo := core.RandomColor(sampler).MultiplyVec(core.RandomColor(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < grid.MetalThreshold:
				albedo := core.RandomColorRange(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}

			world.Add(geometry.NewSphere(center, grid.SmallRadius, sphereMaterial))
			added++
		}
	}
	return added
}

func (g GridConfig) clearOfExclusions(center core.Point3) bool {
	for _, exclusion := range g.ExclusionCenters {
		if center.Subtract(exclusion).Length() <= g.ExclusionDistance {
			return false
		}
	}
	return true
}
