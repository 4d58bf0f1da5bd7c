package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithSpheres adds initial spheres to the scene.
//
// Parameters:
//   - spheres: the spheres to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSpheres(spheres ...Sphere) SceneBuilderOption {
	return func(s *scene) {
		s.spheres = append(s.spheres, spheres...)
	}
}

// WithTraceWorkers sets the number of worker goroutines used for the
// row-parallel trace phase of RenderFrame. Defaults to runtime.NumCPU()-1.
// Higher values may improve throughput at large framebuffer sizes; lower
// values reduce scheduling overhead for small ones.
//
// Parameters:
//   - n: the number of trace workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTraceWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.traceWorkers = n
	}
}

// WithLightDirection sets the direction the scene's directional light travels.
// The vector is normalized; passing a zero vector leaves the default unchanged.
//
// Parameters:
//   - direction: the light's travel direction
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightDirection(direction mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		if direction.Len() == 0 {
			return
		}
		s.lightDirection = direction.Normalize()
	}
}

// WithAmbient sets the ambient term of the scene's flat shading, clamped to [0,1].
//
// Parameters:
//   - ambient: the ambient light fraction
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbient(ambient float32) SceneBuilderOption {
	return func(s *scene) {
		if ambient < 0 {
			ambient = 0
		}
		if ambient > 1 {
			ambient = 1
		}
		s.ambient = ambient
	}
}
