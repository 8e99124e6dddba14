package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. The image goes to
// stdout unless an output path is given; everything else goes to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "JSON config file")
	envPath := fs.String("env", "", "Env file with PT_* overrides (default .env if present)")
	sceneID := fs.String("scene", "", "Scene to render (see -list-scenes)")
	width := fs.Int("width", 0, "Image width in pixels")
	samples := fs.Int("samples", 0, "Samples per pixel")
	depth := fs.Int("depth", -1, "Maximum ray bounce depth")
	output := fs.String("o", "", "Output file (.ppm, .png, .webp, .tga, .bmp, .tif); PPM to stdout if empty")
	thumbnail := fs.Bool("thumbnail", false, "Also write a PNG thumbnail next to the output")
	thumbSize := fs.Int("thumb-size", 0, "Thumbnail bounding box in pixels")
	previewScale := fs.Int("preview-scale", 0, "Also write a nearest-neighbour PNG preview enlarged by this factor")
	listScenes := fs.Bool("list-scenes", false, "List available scenes and exit")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		fmt.Fprintln(stderr, "Path Tracer")
		fmt.Fprintln(stderr, "Usage: pathtracer [options] > image.ppm")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		printScenes(stderr)
		return 0
	}

	if *listScenes {
		printScenes(stdout)
		return 0
	}

	cfg, err := loadConfig(*configPath, *envPath, config.Flags{
		Scene:         *sceneID,
		Output:        *output,
		Width:         *width,
		Samples:       *samples,
		MaxDepth:      *depth,
		Thumbnail:     *thumbnail,
		ThumbnailSize: *thumbSize,
		PreviewScale:  *previewScale,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := renderer.NewDefaultLogger(stderr)
	if err := render(cfg, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers defaults, config file, environment and flags, then validates
func loadConfig(configPath, envPath string, flags config.Flags) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if err := config.LoadEnv(envPath); err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Output != "" {
		if _, err := imageio.FormatFromPath(cfg.Output); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// createScene builds the configured scene and applies camera and sampling settings
func createScene(cfg config.Config, sampler core.Sampler) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene, sampler, scene.Options{
		AspectRatio: cfg.AspectRatio,
		Grid:        cfg.GridConfig(),
	})
	if err != nil {
		return nil, err
	}

	cameraConfig := s.CameraConfig
	if !cfg.Camera.IsZero() {
		cfg.Camera.ApplyTo(&cameraConfig)
		if err := config.ValidateCamera(cameraConfig); err != nil {
			return nil, err
		}
	}
	cameraConfig.AspectRatio = cfg.AspectRatio
	s.SetCameraConfig(cameraConfig)

	s.SamplingConfig = cfg.SamplingConfig()
	return s, nil
}

func render(cfg config.Config, stdout io.Writer, logger core.Logger) error {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(time.Now().UnixNano())))

	s, err := createScene(cfg, sampler)
	if err != nil {
		return err
	}
	sc := s.SamplingConfig
	logger.Printf("Scene %q: %d objects, %dx%d, %d samples, depth %d\n",
		cfg.Scene, s.World.Len(), sc.Width, sc.Height, sc.SamplesPerPixel, sc.MaxDepth)

	raytracer := renderer.NewRaytracer(s, sampler, logger)
	img, stats := raytracer.RenderPass()
	logger.Printf("Render completed in %v (%.0f samples/s, %.1f samples per pixel)\n",
		stats.Duration, stats.SamplesPerSecond(), stats.AverageSamples)

	if cfg.Output == "" {
		if err := imageio.EncodePPM(stdout, img); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
	} else {
		if err := imageio.WriteFile(cfg.Output, img); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", cfg.Output)
	}

	base := cfg.Output
	if base == "" {
		base = "render.ppm"
	}
	if cfg.Thumbnail {
		path := imageio.SiblingPath(base, "thumb", imageio.FormatPNG)
		if err := imageio.WriteFile(path, imageio.Thumbnail(img, uint(cfg.ThumbnailSize))); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", path)
	}
	if cfg.PreviewScale > 1 {
		path := imageio.SiblingPath(base, "preview", imageio.FormatPNG)
		if err := imageio.WriteFile(path, imageio.Upscale(img, cfg.PreviewScale)); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", path)
	}
	return nil
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-10s %s - %s\n", info.ID, info.DisplayName, info.Description)
	}
}
