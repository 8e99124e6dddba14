package renderer

import (
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPixelStats_AddSample(t *testing.T) {
	var ps PixelStats
	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	if !ps.ColorAccum.Equals(core.NewVec3(1, 1, 0.5)) {
		t.Errorf("Expected accumulated (1,1,0.5), got %v", ps.ColorAccum)
	}
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
}

func TestRenderStats_SamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalPixels: 10, TotalSamples: 1000, Duration: 2 * time.Second}
	stats.finalize()

	if stats.AverageSamples != 100 {
		t.Errorf("Expected 100 average samples, got %f", stats.AverageSamples)
	}
	if stats.SamplesPerSecond() != 500 {
		t.Errorf("Expected 500 samples/s, got %f", stats.SamplesPerSecond())
	}
	if (RenderStats{}).SamplesPerSecond() != 0 {
		t.Error("Zero duration should report zero throughput")
	}
}
