package renderer

import (
	"github.com/Carmen-Shannon/orbit-go/engine/window"
)

// renderer is the implementation of the Renderer interface.
// All methods delegate to the backend, which carries its own lock.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer presents CPU-traced RGBA framebuffers to the display surface.
//
// The viewer ray-traces each frame on the CPU; the Renderer's job is the
// platform half: it owns the WebGPU surface and a blit pipeline that uploads
// the framebuffer as a texture and draws it across the whole surface.
type Renderer interface {
	// Resize reconfigures the display surface for a new framebuffer size.
	// Call from the window resize callback with pixel dimensions.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next
	// surface configuration (Resize).
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// PresentFrame uploads an RGBA framebuffer (4 bytes per pixel, row-major,
	// row 0 at the top) and presents it to the display surface.
	// len(pixels) must be at least width*height*4.
	//
	// Parameters:
	//   - pixels: the RGBA pixel data
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface or upload texture cannot be acquired
	PresentFrame(pixels []byte, width, height int) error
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type.
// The window provides the platform-specific surface descriptor and the initial
// surface dimensions.
//
// Parameters:
//   - backendType: the type of presentation backend to use (e.g., WGPU)
//   - window: the window whose surface frames are presented to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPUPresenterBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) PresentFrame(pixels []byte, width, height int) error {
	return r.backend.PresentFrame(pixels, width, height)
}
