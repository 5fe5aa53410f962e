package binding

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// provider is the implementation of the Provider interface.
type provider struct {
	mu sync.RWMutex

	label string

	buffers      map[int]*wgpu.Buffer
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// Provider collects the GPU resources bound together as one bind group:
// buffers, texture views, and samplers keyed by binding index, plus the
// created bind group and its layout. Mesh providers additionally carry
// vertex and index buffers for draw calls.
//
// A Provider owns the buffers and bind group it holds; texture views and
// samplers are set by their creators (render targets, shared samplers) and
// are not released with the provider.
type Provider interface {
	// Label returns the debug label used for GPU resource names.
	Label() string

	// Buffer returns the buffer at the given binding index, or nil.
	Buffer(binding int) *wgpu.Buffer

	// SetBuffer stores a buffer at the given binding index.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// TextureView returns the texture view at the given binding index, or nil.
	TextureView(binding int) *wgpu.TextureView

	// SetTextureView stores a texture view at the given binding index.
	SetTextureView(binding int, view *wgpu.TextureView)

	// Sampler returns the sampler at the given binding index, or nil.
	Sampler(binding int) *wgpu.Sampler

	// SetSampler stores a sampler at the given binding index.
	SetSampler(binding int, s *wgpu.Sampler)

	// BindGroup returns the created bind group, or nil before initialization.
	BindGroup() *wgpu.BindGroup

	// SetBindGroup stores the created bind group, releasing any previous one.
	SetBindGroup(bg *wgpu.BindGroup)

	// BindGroupLayout returns the layout the bind group was created from, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout

	// SetBindGroupLayout stores the bind group layout.
	SetBindGroupLayout(l *wgpu.BindGroupLayout)

	// VertexBuffer returns the vertex buffer for mesh providers, or nil.
	VertexBuffer() *wgpu.Buffer

	// SetVertexBuffer stores the vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// IndexBuffer returns the index buffer for mesh providers, or nil.
	IndexBuffer() *wgpu.Buffer

	// SetIndexBuffer stores the index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// IndexCount returns the number of indices to draw.
	IndexCount() int

	// SetIndexCount stores the number of indices to draw.
	SetIndexCount(count int)

	// Release frees the owned GPU resources: the bind group and all buffers.
	// Texture views and samplers are left to their owners. Safe to call more
	// than once.
	Release()
}

var _ Provider = &provider{}

// NewProvider creates an empty Provider with the given debug label.
//
// Parameters:
//   - label: debug label used for GPU resource names
//
// Returns:
//   - Provider: the new provider
func NewProvider(label string) Provider {
	return &provider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
}

func (p *provider) Label() string {
	return p.label
}

func (p *provider) Buffer(binding int) *wgpu.Buffer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buffers[binding]
}

func (p *provider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffers[binding] = buf
}

func (p *provider) TextureView(binding int) *wgpu.TextureView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.textureViews[binding]
}

func (p *provider) SetTextureView(binding int, view *wgpu.TextureView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.textureViews[binding] = view
}

func (p *provider) Sampler(binding int) *wgpu.Sampler {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.samplers[binding]
}

func (p *provider) SetSampler(binding int, s *wgpu.Sampler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samplers[binding] = s
}

func (p *provider) BindGroup() *wgpu.BindGroup {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bindGroup
}

func (p *provider) SetBindGroup(bg *wgpu.BindGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *provider) BindGroupLayout() *wgpu.BindGroupLayout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bindGroupLayout
}

func (p *provider) SetBindGroupLayout(l *wgpu.BindGroupLayout) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bindGroupLayout = l
}

func (p *provider) VertexBuffer() *wgpu.Buffer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.vertexBuffer
}

func (p *provider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vertexBuffer = buf
}

func (p *provider) IndexBuffer() *wgpu.Buffer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.indexBuffer
}

func (p *provider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexBuffer = buf
}

func (p *provider) IndexCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.indexCount
}

func (p *provider) SetIndexCount(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexCount = count
}

func (p *provider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for k, buf := range p.buffers {
		buf.Release()
		delete(p.buffers, k)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
