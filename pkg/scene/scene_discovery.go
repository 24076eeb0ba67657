package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier, accepted by Create
	DisplayName string // Human readable name
	Description string // Optional description
}

type sceneFactory func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene

type builtinScene struct {
	description string
	create      sceneFactory
}

var builtinScenes = map[string]builtinScene{
	"random": {
		description: "Ground sphere with a jittered grid of small spheres and three large ones",
		create:      NewRandomScene,
	},
	"two-spheres": {
		description: "Diffuse sphere resting on a diffuse ground sphere",
		create: func(_ int64, cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewTwoSphereScene(cameraOverrides...)
		},
	},
	"mirror": {
		description: "Mirror sphere inside a mirror sphere",
		create: func(_ int64, cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewMirrorScene(cameraOverrides...)
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, s := range builtinScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: s.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the named scene. The seed only affects randomly generated scenes.
func Create(name string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	s, ok := builtinScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		ids := make([]string, 0, len(builtinScenes))
		for _, info := range ListScenes() {
			ids = append(ids, info.ID)
		}
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(ids, ", "))
	}
	return s.create(seed, cameraOverrides...), nil
}

// titleCase converts a scene ID like "two-spheres" to "Two Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
