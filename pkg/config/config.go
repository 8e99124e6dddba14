package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every validation and parse failure
var ErrInvalid = errors.New("invalid configuration")

// Environment variables read by ApplyEnv
const (
	EnvWidth    = "PT_WIDTH"
	EnvSamples  = "PT_SAMPLES"
	EnvMaxDepth = "PT_MAX_DEPTH"
	EnvScene    = "PT_SCENE"
	EnvOutput   = "PT_OUTPUT"
)

// Config holds the render settings.
// Fields not set in a config file keep their defaults.
type Config struct {
	// Image
	AspectRatio     float64 `json:"aspect_ratio"`
	ImageWidth      int     `json:"image_width"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxDepth        int     `json:"max_depth"`

	// Scene and output
	Scene         string `json:"scene"`
	Output        string `json:"output"` // Empty writes PPM to stdout
	Thumbnail     bool   `json:"thumbnail"`
	ThumbnailSize int    `json:"thumbnail_size"`
	PreviewScale  int    `json:"preview_scale"` // 0 disables the upscaled preview

	Camera CameraConfig `json:"camera"`
	Grid   GridConfig   `json:"grid"`
}

// CameraConfig overrides a scene's default camera. Nil fields keep the scene's value.
type CameraConfig struct {
	LookFrom      *[3]float64 `json:"look_from,omitempty"`
	LookAt        *[3]float64 `json:"look_at,omitempty"`
	ViewUp        *[3]float64 `json:"view_up,omitempty"`
	VFov          *float64    `json:"vfov,omitempty"`
	Aperture      *float64    `json:"aperture,omitempty"`
	FocusDistance *float64    `json:"focus_distance,omitempty"`
}

// GridConfig overrides the random scene's grid. Nil fields keep the default.
type GridConfig struct {
	Min               *int          `json:"min,omitempty"`
	Max               *int          `json:"max,omitempty"`
	SmallRadius       *float64      `json:"small_radius,omitempty"`
	Jitter            *float64      `json:"jitter,omitempty"`
	DiffuseThreshold  *float64      `json:"diffuse_threshold,omitempty"`
	MetalThreshold    *float64      `json:"metal_threshold,omitempty"`
	ExclusionDistance *float64      `json:"exclusion_distance,omitempty"`
	ExclusionCenters  *[][3]float64 `json:"exclusion_centers,omitempty"`
}

// Flags holds CLI flag values that override config file and environment settings.
// Zero values (and a negative MaxDepth) mean "not set".
type Flags struct {
	Scene         string
	Output        string
	Width         int
	Samples       int
	MaxDepth      int
	Thumbnail     bool
	ThumbnailSize int
	PreviewScale  int
}

// Default returns the built-in render settings
func Default() Config {
	return Config{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      384,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Scene:           scene.DefaultSceneID,
		ThumbnailSize:   128,
	}
}

// Load reads a JSON config file layered over the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w: %w", path, ErrInvalid, err)
	}

	return cfg, nil
}

// LoadEnv loads a .env file into the process environment without replacing
// variables that are already set. A missing default file is not an error;
// a missing explicit path is.
func LoadEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: env file %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load env %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from PT_* environment variables
func (c *Config) ApplyEnv() error {
	intVars := []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &c.ImageWidth},
		{EnvSamples, &c.SamplesPerPixel},
		{EnvMaxDepth, &c.MaxDepth},
	}
	for _, v := range intVars {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", v.name, raw, ErrInvalid)
		}
		*v.dst = n
	}

	if s := os.Getenv(EnvScene); s != "" {
		c.Scene = s
	}
	if s := os.Getenv(EnvOutput); s != "" {
		c.Output = s
	}
	return nil
}

// Resolve applies CLI flags, which take priority when set
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Width > 0 {
		c.ImageWidth = flags.Width
	}
	if flags.Samples > 0 {
		c.SamplesPerPixel = flags.Samples
	}
	if flags.MaxDepth >= 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Thumbnail {
		c.Thumbnail = true
	}
	if flags.ThumbnailSize > 0 {
		c.ThumbnailSize = flags.ThumbnailSize
	}
	if flags.PreviewScale > 0 {
		c.PreviewScale = flags.PreviewScale
	}
}

// Validate reports the first setting that cannot produce a render
func (c Config) Validate() error {
	switch {
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("samples_per_pixel must be at least 1, got %d: %w", c.SamplesPerPixel, ErrInvalid)
	case c.MaxDepth < 0:
		return fmt.Errorf("max_depth must not be negative, got %d: %w", c.MaxDepth, ErrInvalid)
	case c.ImageWidth < 1:
		return fmt.Errorf("image_width must be at least 1, got %d: %w", c.ImageWidth, ErrInvalid)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("aspect_ratio must be positive, got %g: %w", c.AspectRatio, ErrInvalid)
	case c.ThumbnailSize < 1:
		return fmt.Errorf("thumbnail_size must be at least 1, got %d: %w", c.ThumbnailSize, ErrInvalid)
	case c.PreviewScale < 0:
		return fmt.Errorf("preview_scale must not be negative, got %d: %w", c.PreviewScale, ErrInvalid)
	}

	if v := c.Camera.VFov; v != nil && !(*v > 0 && *v < 180) {
		return fmt.Errorf("camera.vfov must be in (0, 180), got %g: %w", *v, ErrInvalid)
	}
	if a := c.Camera.Aperture; a != nil && *a < 0 {
		return fmt.Errorf("camera.aperture must not be negative, got %g: %w", *a, ErrInvalid)
	}
	if u := c.Camera.ViewUp; u != nil && vec(*u).NearZero() {
		return fmt.Errorf("camera.view_up must not be zero: %w", ErrInvalid)
	}
	if c.Camera.LookFrom != nil && c.Camera.LookAt != nil {
		camera := renderer.CameraConfig{LookFrom: vec(*c.Camera.LookFrom), LookAt: vec(*c.Camera.LookAt)}
		check := checkViewDirection
		if c.Camera.ViewUp != nil {
			camera.Up = vec(*c.Camera.ViewUp)
			check = ValidateCamera
		}
		if err := check(camera); err != nil {
			return err
		}
	}

	grid := c.GridConfig()
	if !(grid.SmallRadius > 0) {
		return fmt.Errorf("grid.small_radius must be positive, got %g: %w", grid.SmallRadius, ErrInvalid)
	}
	if !(grid.Jitter >= 0) {
		return fmt.Errorf("grid.jitter must not be negative, got %g: %w", grid.Jitter, ErrInvalid)
	}
	if grid.Max <= grid.Min {
		return fmt.Errorf("grid.max (%d) must exceed grid.min (%d): %w", grid.Max, grid.Min, ErrInvalid)
	}
	if !(0 <= grid.DiffuseThreshold && grid.DiffuseThreshold <= grid.MetalThreshold && grid.MetalThreshold <= 1) {
		return fmt.Errorf("grid thresholds must satisfy 0 <= diffuse (%g) <= metal (%g) <= 1: %w",
			grid.DiffuseThreshold, grid.MetalThreshold, ErrInvalid)
	}
	return nil
}

// ValidateCamera rejects a camera whose view direction or up vector leaves no
// orthonormal basis. Such a camera emits zero-length rays.
func ValidateCamera(camera renderer.CameraConfig) error {
	if err := checkViewDirection(camera); err != nil {
		return err
	}
	w := camera.LookFrom.Subtract(camera.LookAt)
	if camera.Up.Cross(w).NearZero() {
		return fmt.Errorf("camera.view_up %v is parallel to the view direction: %w", camera.Up, ErrInvalid)
	}
	return nil
}

func checkViewDirection(camera renderer.CameraConfig) error {
	if camera.LookFrom.Subtract(camera.LookAt).NearZero() {
		return fmt.Errorf("camera.look_from and camera.look_at must differ, both are %v: %w", camera.LookFrom, ErrInvalid)
	}
	return nil
}

// ImageHeight returns the height implied by the width and aspect ratio
func (c Config) ImageHeight() int {
	return scene.ImageHeight(c.ImageWidth, c.AspectRatio)
}

// SamplingConfig converts the image settings for the renderer
func (c Config) SamplingConfig() core.SamplingConfig {
	return core.SamplingConfig{
		Width:           c.ImageWidth,
		Height:          c.ImageHeight(),
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
	}
}

// GridConfig returns the default grid with any configured overrides applied
func (c Config) GridConfig() scene.GridConfig {
	grid := scene.DefaultGridConfig()
	c.Grid.ApplyTo(&grid)
	return grid
}

// ApplyTo overwrites the fields of dst that are set in the override
func (g GridConfig) ApplyTo(dst *scene.GridConfig) {
	if g.Min != nil {
		dst.Min = *g.Min
	}
	if g.Max != nil {
		dst.Max = *g.Max
	}
	if g.SmallRadius != nil {
		dst.SmallRadius = *g.SmallRadius
	}
	if g.Jitter != nil {
		dst.Jitter = *g.Jitter
	}
	if g.DiffuseThreshold != nil {
		dst.DiffuseThreshold = *g.DiffuseThreshold
	}
	if g.MetalThreshold != nil {
		dst.MetalThreshold = *g.MetalThreshold
	}
	if g.ExclusionDistance != nil {
		dst.ExclusionDistance = *g.ExclusionDistance
	}
	if g.ExclusionCenters != nil {
		centers := make([]core.Point3, len(*g.ExclusionCenters))
		for i, c := range *g.ExclusionCenters {
			centers[i] = vec(c)
		}
		dst.ExclusionCenters = centers
	}
}

// ApplyTo overwrites the fields of dst that are set in the override
func (cc CameraConfig) ApplyTo(dst *renderer.CameraConfig) {
	if cc.LookFrom != nil {
		dst.LookFrom = vec(*cc.LookFrom)
	}
	if cc.LookAt != nil {
		dst.LookAt = vec(*cc.LookAt)
	}
	if cc.ViewUp != nil {
		dst.Up = vec(*cc.ViewUp)
	}
	if cc.VFov != nil {
		dst.VFov = *cc.VFov
	}
	if cc.Aperture != nil {
		dst.Aperture = *cc.Aperture
	}
	if cc.FocusDistance != nil {
		dst.FocusDistance = *cc.FocusDistance
	}
}

// IsZero reports whether no camera field is overridden
func (cc CameraConfig) IsZero() bool {
	return cc == CameraConfig{}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
