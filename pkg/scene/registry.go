package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned when a scene ID is not registered
var ErrUnknownScene = errors.New("unknown scene")

// DefaultSceneID is the scene rendered when none is requested
const DefaultSceneID = "random"

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // Human-readable name
	Description string `json:"description"` // Short description
}

// Options carries the parameters scene builders may need
type Options struct {
	AspectRatio float64
	Grid        GridConfig // Only used by the random scene
}

type builder struct {
	info  SceneInfo
	build func(sampler core.Sampler, opts Options) *Scene
}

var builtInScenes = map[string]builder{
	"random": {
		info: SceneInfo{
			ID:          "random",
			DisplayName: titleCase("random-spheres"),
			Description: "Ground sphere with a random grid of small spheres and three large ones",
		},
		build: func(sampler core.Sampler, opts Options) *Scene {
			return NewRandomScene(sampler, opts.Grid, opts.AspectRatio)
		},
	},
	"materials": {
		info: SceneInfo{
			ID:          "materials",
			DisplayName: titleCase("material-showcase"),
			Description: "Hollow glass, diffuse and metal balls side by side",
		},
		build: func(_ core.Sampler, opts Options) *Scene {
			return NewMaterialsScene(opts.AspectRatio)
		},
	},
	"single": {
		info: SceneInfo{
			ID:          "single",
			DisplayName: titleCase("single-sphere"),
			Description: "One diffuse sphere straight ahead of the camera",
		},
		build: func(_ core.Sampler, opts Options) *Scene {
			return NewSingleSphereScene(opts.AspectRatio)
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, b := range builtInScenes {
		scenes = append(scenes, b.info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the scene registered under id. The sampler drives any
// procedural placement; an empty id selects the default scene.
func Create(id string, sampler core.Sampler, opts Options) (*Scene, error) {
	if id == "" {
		id = DefaultSceneID
	}
	b, ok := builtInScenes[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", id, ErrUnknownScene)
	}
	if opts.AspectRatio <= 0 {
		opts.AspectRatio = 16.0 / 9.0
	}
	return b.build(sampler, opts), nil
}

// titleCase converts an identifier-style string to title case
// e.g., "random-spheres" -> "Random Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
