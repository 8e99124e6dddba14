package renderer

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// maxChannel keeps quantized channels below 256 after scaling
const maxChannel = 0.999

// DefaultSamplingConfig returns 384x216 with 100 samples and 50 bounces
func DefaultSamplingConfig() core.SamplingConfig {
	return core.SamplingConfig{
		Width:           384,
		Height:          216,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      core.Scene
	integrator integrator.Integrator
	sampler    core.Sampler
	logger     core.Logger
	config     core.SamplingConfig
}

// NewRaytracer creates a new raytracer using the scene's sampling configuration
func NewRaytracer(scene core.Scene, sampler core.Sampler, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewPathTracingIntegrator(),
		sampler:    sampler,
		logger:     logger,
		config:     scene.GetSamplingConfig(),
	}
}

// RenderPass renders every pixel with multi-sampling and returns the quantized image.
// Scanlines are traced from the bottom of the viewport (j = height-1) and stored top row first.
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	width, height := rt.config.Width, rt.config.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	camera := rt.scene.GetCamera()
	stats := RenderStats{TotalPixels: width * height}
	startTime := time.Now()

	// Jitter denominators; floored at 1 so single-row or single-column images stay finite
	du := float64(max(width-1, 1))
	dv := float64(max(height-1, 1))

	for j := height - 1; j >= 0; j-- {
		rt.logger.Printf("\rScanlines remaining: %d ", j)
		for i := 0; i < width; i++ {
			var ps PixelStats
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				u := (float64(i) + rt.sampler.Get1D()) / du
				v := (float64(j) + rt.sampler.Get1D()) / dv
				ray := camera.GetRay(u, v, rt.sampler)
				ps.AddSample(rt.integrator.RayColor(ray, rt.scene, rt.sampler, rt.config.MaxDepth))
			}
			stats.TotalSamples += ps.SampleCount

			img.SetRGBA(i, height-1-j, ColorToRGBA(ps.ColorAccum, ps.SampleCount))
		}
	}
	rt.logger.Printf("\n")

	stats.Duration = time.Since(startTime)
	stats.finalize()
	return img, stats
}

// ColorToRGBA averages an accumulated color over its samples, gamma-corrects it and quantizes to 8 bits
func ColorToRGBA(sum core.Color, samples int) color.RGBA {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	return color.RGBA{
		R: QuantizeChannel(sum.X * scale),
		G: QuantizeChannel(sum.Y * scale),
		B: QuantizeChannel(sum.Z * scale),
		A: 255,
	}
}

// QuantizeChannel maps a linear channel value to [0,255] with gamma 2:
// floor(256 * clamp(sqrt(c), 0, 0.999))
func QuantizeChannel(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	gamma := math.Sqrt(c)
	return uint8(256 * math.Max(0, math.Min(maxChannel, gamma)))
}
