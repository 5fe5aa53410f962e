package scene

import (
	"github.com/Carmen-Shannon/oxy-postfx/engine/camera"
	"github.com/Carmen-Shannon/oxy-postfx/engine/light"
	"github.com/Carmen-Shannon/oxy-postfx/engine/loader"
)

// SceneBuilderOption is a functional option for configuring a Scene during construction.
type SceneBuilderOption func(*sceneImpl)

// WithCamera sets the scene's camera.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.camera = cam
	}
}

// WithLights sets the scene's lighting rig.
//
// Parameters:
//   - rig: the lighting rig to use
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithLights(rig light.Rig) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.lights = rig
	}
}

// WithMeshes queues meshes for upload during Init.
//
// Parameters:
//   - meshes: the meshes to queue
//
// Returns:
//   - SceneBuilderOption: the option to apply
func WithMeshes(meshes ...loader.MeshData) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.pending = append(s.pending, meshes...)
	}
}
