package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// blitShaderWGSL draws a single fullscreen triangle and samples the uploaded
// framebuffer texture across it. Vertex positions and UVs are derived from the
// vertex index, so no vertex buffers are needed.
const blitShaderWGSL = `
@group(0) @binding(0) var frame_texture: texture_2d<f32>;
@group(0) @binding(1) var frame_sampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    var out: VertexOutput;
    let uv = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    out.position = vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
    out.uv = vec2<f32>(uv.x, 1.0 - uv.y);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(frame_texture, frame_sampler, in.uv);
}
`

// wgpuPresenterBackend is the WebGPU-specific backend interface.
type wgpuPresenterBackend interface {
	// ConfigureSurface (re)configures the display surface for the given pixel
	// dimensions. Must be called once before the first PresentFrame and again
	// whenever the window framebuffer size changes.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode used by subsequent surface
	// configurations.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// PresentFrame uploads the RGBA framebuffer and blits it to the surface.
	//
	// Parameters:
	//   - pixels: RGBA pixel data, at least width*height*4 bytes
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface texture cannot be acquired or the frame is malformed
	PresentFrame(pixels []byte, width, height int) error
}

// wgpuPresenterBackendImpl holds the WebGPU device state and the blit
// pipeline used to present CPU framebuffers.
type wgpuPresenterBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	configured    bool

	blitPipeline    *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler

	// Frame texture resources, recreated when the framebuffer size changes.
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	bindGroup    *wgpu.BindGroup
	frameWidth   int
	frameHeight  int
}

var _ wgpuPresenterBackend = &wgpuPresenterBackendImpl{}

// newWGPUPresenterBackend initializes the WebGPU instance, surface, adapter,
// device, and queue. Panics on unrecoverable setup failure, matching the
// window layer's construction behavior.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor from the window
//   - forceFallbackAdapter: if true, request a software/fallback adapter
//
// Returns:
//   - wgpuPresenterBackend: the initialized backend
func newWGPUPresenterBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) wgpuPresenterBackend {
	runtime.LockOSThread()
	b := &wgpuPresenterBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Presenter Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b
}

func (b *wgpuPresenterBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.configured = true

	// The blit pipeline targets the surface format, so it is (re)built here.
	b.buildBlitPipeline()
}

func (b *wgpuPresenterBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuPresenterBackendImpl) PresentFrame(pixels []byte, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return fmt.Errorf("surface is not configured — call ConfigureSurface first")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid framebuffer dimensions %dx%d", width, height)
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("framebuffer too small: have %d bytes, need %d", len(pixels), width*height*4)
	}

	if err := b.ensureFrameTexture(width, height); err != nil {
		return err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  b.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels[:width*height*4],
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width) * 4,
			RowsPerImage: uint32(height),
		},
		&wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	defer func() {
		view.Release()
		surfaceTexture.Release()
	}()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 0, G: 0, B: 0, A: 1.0,
				},
			},
		},
	})
	pass.SetPipeline(b.blitPipeline)
	pass.SetBindGroup(0, b.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

// buildBlitPipeline compiles the embedded blit shader and creates the
// fullscreen-triangle render pipeline targeting the current surface format.
// Caller must hold the mutex.
func (b *wgpuPresenterBackendImpl) buildBlitPipeline() {
	shaderModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "blit",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: blitShaderWGSL,
		},
	})
	if err != nil {
		panic(err)
	}
	defer shaderModule.Release()

	if b.bindGroupLayout == nil {
		layout, layoutErr := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "blit bind group layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		})
		if layoutErr != nil {
			panic(layoutErr)
		}
		b.bindGroupLayout = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "blit pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		panic(err)
	}
	defer pipelineLayout.Release()

	if b.blitPipeline != nil {
		b.blitPipeline.Release()
	}
	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "blit Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}
	b.blitPipeline = created
}

// ensureFrameTexture creates (or recreates, on size change) the texture the
// CPU framebuffer is uploaded into, along with its view and bind group.
// Caller must hold the mutex.
func (b *wgpuPresenterBackendImpl) ensureFrameTexture(width, height int) error {
	if b.frameTexture != nil && b.frameWidth == width && b.frameHeight == height {
		return nil
	}

	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameTexture != nil {
		b.frameTexture.Release()
		b.frameTexture = nil
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Frame Texture",
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}

	if b.sampler == nil {
		// Nearest filtering: the framebuffer is presented 1:1 (or stretched
		// during a resize), and nearest keeps traced pixels crisp.
		samp, sampErr := b.device.CreateSampler(&wgpu.SamplerDescriptor{
			Label:         "Frame Sampler",
			AddressModeU:  wgpu.AddressModeClampToEdge,
			AddressModeV:  wgpu.AddressModeClampToEdge,
			AddressModeW:  wgpu.AddressModeClampToEdge,
			MagFilter:     wgpu.FilterModeNearest,
			MinFilter:     wgpu.FilterModeNearest,
			MipmapFilter:  wgpu.MipmapFilterModeNearest,
			LodMinClamp:   0,
			LodMaxClamp:   32,
			MaxAnisotropy: 1,
		})
		if sampErr != nil {
			view.Release()
			tex.Release()
			return sampErr
		}
		b.sampler = samp
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: view,
			},
			{
				Binding: 1,
				Sampler: b.sampler,
			},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	b.frameTexture = tex
	b.frameView = view
	b.bindGroup = bindGroup
	b.frameWidth = width
	b.frameHeight = height
	return nil
}
