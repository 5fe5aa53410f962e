package renderer

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer/binding"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how finished frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes presentation with the display refresh (FIFO).
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately without waiting for vertical sync.
	PresentModeUncapped
)

// Renderer is the playground's WebGPU rendering surface. It owns the GPU
// device, the swapchain, a cache of render pipelines, and the fixed set of
// offscreen targets the scene and effect passes read and write.
//
// A frame is encoded as: BeginFrame, one or more passes (BeginTargetPass or
// BeginSurfacePass followed by draw calls and EndPass), EndFrame, Present.
type Renderer interface {
	// Resize reconfigures the surface and recreates all offscreen targets at
	// the new dimensions. Degenerate sizes (<= 0) are ignored.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)

	// Size returns the current surface dimensions in pixels.
	//
	// Returns:
	//   - width, height: surface size in pixels
	Size() (width, height int)

	// SurfaceFormat returns the swapchain texture format. Pipelines whose
	// passes target the visible surface must use this format.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	SurfaceFormat() wgpu.TextureFormat

	// Target returns the named offscreen target, or nil if unknown.
	// See the Target* constants for the available names.
	//
	// Parameters:
	//   - name: the target name
	//
	// Returns:
	//   - *Target: the target, or nil
	Target(name string) *Target

	// RegisterMeshPipeline creates and caches a render pipeline for indexed
	// mesh drawing (position/normal/uv vertex layout, depth tested).
	// Registering an existing key is a no-op.
	//
	// Parameters:
	//   - key: unique pipeline cache key
	//   - vert: vertex shader (module must contain the entry point)
	//   - frag: fragment shader
	//   - target: color target format for this pipeline
	//   - layouts: bind group layout descriptors in group order
	//
	// Returns:
	//   - error: error if pipeline creation fails
	RegisterMeshPipeline(key string, vert, frag shader.Shader, target wgpu.TextureFormat, layouts []wgpu.BindGroupLayoutDescriptor) error

	// RegisterFullscreenPipeline creates and caches a render pipeline drawing
	// a single fullscreen triangle with no vertex buffers and no depth.
	// Registering an existing key is a no-op.
	//
	// Parameters:
	//   - key: unique pipeline cache key
	//   - vert: vertex shader (the fullscreen triangle entry point)
	//   - frag: fragment shader
	//   - target: color target format for this pipeline
	//   - layouts: bind group layout descriptors in group order
	//
	// Returns:
	//   - error: error if pipeline creation fails
	RegisterFullscreenPipeline(key string, vert, frag shader.Shader, target wgpu.TextureFormat, layouts []wgpu.BindGroupLayoutDescriptor) error

	// HasPipeline reports whether a pipeline is cached under the given key.
	//
	// Parameters:
	//   - key: the pipeline cache key
	//
	// Returns:
	//   - bool: true if the pipeline exists
	HasPipeline(key string) bool

	// InitMeshBuffers creates GPU vertex and index buffers from raw bytes and
	// stores them on the provider for later draw calls.
	//
	// Parameters:
	//   - provider: the provider to store the buffers on
	//   - vertexData: raw vertex bytes (32-byte stride: pos3 normal3 uv2)
	//   - indexData: raw uint32 index bytes
	//   - indexCount: number of indices
	//
	// Returns:
	//   - error: error if buffer creation fails
	InitMeshBuffers(provider binding.Provider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates uniform buffers for any buffer entries in the
	// descriptor, then creates the bind group from the provider's resources.
	// Texture and sampler entries must be populated beforehand via
	// InitTextureView / InitSampler (or SetTextureView for shared views).
	//
	// Parameters:
	//   - provider: the provider to store the bind group on
	//   - descriptor: the layout descriptor defining the entries
	//
	// Returns:
	//   - error: error if a texture or sampler slot is empty, or creation fails
	InitBindGroup(provider binding.Provider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads staged RGBA pixels to a new GPU texture and
	// stores the resulting view on the provider at the binding index.
	//
	// Parameters:
	//   - provider: the provider to store the view on
	//   - bindingKey: the binding index
	//   - stagingData: decoded pixel data and dimensions
	//
	// Returns:
	//   - error: error if texture creation fails
	InitTextureView(provider binding.Provider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler and stores it on the provider at the
	// binding index. Zero-valued staging fields fall back to linear/repeat.
	//
	// Parameters:
	//   - provider: the provider to store the sampler on
	//   - bindingKey: the binding index
	//   - stagingData: the sampler configuration
	//
	// Returns:
	//   - error: error if sampler creation fails
	InitSampler(provider binding.Provider, bindingKey int, stagingData common.SamplerStagingData) error

	// WriteBuffer writes data to the provider's buffer at the binding index.
	// A missing buffer is silently skipped.
	//
	// Parameters:
	//   - provider: the provider holding the buffer
	//   - bindingKey: the binding index
	//   - data: the bytes to write
	WriteBuffer(provider binding.Provider, bindingKey int, data []byte)

	// BeginFrame acquires the swapchain texture and opens the frame's command
	// encoder. Must be paired with EndFrame and Present.
	//
	// Returns:
	//   - error: error if the swapchain texture could not be acquired
	BeginFrame() error

	// BeginTargetPass opens a render pass targeting the named offscreen
	// target. When withDepth is true the scene depth buffer is attached and
	// cleared.
	//
	// Parameters:
	//   - name: the offscreen target name
	//   - clear: clear color, or nil to load the existing contents
	//   - withDepth: attach and clear the scene depth buffer
	//
	// Returns:
	//   - error: error if the target is unknown or no frame is open
	BeginTargetPass(name string, clear *wgpu.Color, withDepth bool) error

	// BeginSurfacePass opens a render pass targeting the visible surface.
	//
	// Parameters:
	//   - clear: clear color, or nil to load the existing contents
	//
	// Returns:
	//   - error: error if no frame is open
	BeginSurfacePass(clear *wgpu.Color) error

	// DrawMesh encodes an indexed draw of the provider's mesh buffers with
	// the given pipeline and bind groups (set in group order).
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline to draw with
	//   - mesh: provider holding vertex and index buffers
	//   - groups: bind group providers set at group indices 0..n
	//
	// Returns:
	//   - error: error if the pipeline is not found or no pass is open
	DrawMesh(pipelineKey string, mesh binding.Provider, groups ...binding.Provider) error

	// DrawFullscreen encodes a 3-vertex fullscreen triangle draw with the
	// given pipeline and bind groups.
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline to draw with
	//   - groups: bind group providers set at group indices 0..n
	//
	// Returns:
	//   - error: error if the pipeline is not found or no pass is open
	DrawFullscreen(pipelineKey string, groups ...binding.Provider) error

	// EndPass closes the currently open render pass.
	EndPass()

	// EndFrame finishes the frame's command encoder and submits it to the
	// GPU queue. Call Present afterwards to display the frame.
	EndFrame()

	// Present presents the acquired surface texture and releases the frame's
	// swapchain references. No-op when no frame is held.
	Present()
}

// NewRenderer creates a WebGPU renderer attached to the given surface
// descriptor, configures the surface at the initial size, and creates the
// offscreen target set. Panics if the GPU device cannot be acquired, since
// the playground cannot run without one.
//
// Parameters:
//   - surfaceDescriptor: platform surface descriptor (from window.SurfaceDescriptor)
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) Renderer {
	r := newWGPURenderer(surfaceDescriptor)

	for _, opt := range options {
		opt(r)
	}

	r.Resize(width, height)
	return r
}
