package renderer

// RendererBuilderOption is a functional option for configuring a Renderer.
// Use the With* functions to create options.
type RendererBuilderOption func(*renderer)

// WithForceFallbackAdapter forces the backend to use a software/fallback GPU
// adapter instead of a hardware one. Useful for headless or CI environments.
//
// Parameters:
//   - force: if true, request the fallback adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}
