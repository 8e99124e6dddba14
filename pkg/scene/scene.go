package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene, intersected by linear scan
	SamplingConfig core.SamplingConfig
	CameraConfig   renderer.CameraConfig
	TopColor       core.Color // Sky color straight up
	BottomColor    core.Color // Horizon color straight down
}

// newScene creates an empty scene with the standard sky gradient
func newScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		World:          geometry.NewHittableList(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		CameraConfig:   cameraConfig,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0), // White horizon
	}
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetWorld returns the hittable list holding every object
func (s *Scene) GetWorld() core.Shape {
	return s.World
}

// GetBackgroundColors returns the gradient colors for rays that miss everything
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Color) {
	return s.TopColor, s.BottomColor
}

// GetSamplingConfig returns the scene's sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// SetCameraConfig replaces the camera configuration and rebuilds the camera
func (s *Scene) SetCameraConfig(config renderer.CameraConfig) {
	s.CameraConfig = config
	s.Camera = renderer.NewCamera(config)
}

// ImageHeight derives the image height from a width and aspect ratio, never below 1
func ImageHeight(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return max(width, 1)
	}
	return max(int(float64(width)/aspectRatio), 1)
}
