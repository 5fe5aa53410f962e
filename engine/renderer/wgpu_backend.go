package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer/binding"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshVertexStride is the byte stride of the interleaved mesh vertex layout:
// position (3xf32), normal (3xf32), uv (2xf32).
const meshVertexStride = 32

// wgpuRenderer is the WebGPU implementation of the Renderer interface.
type wgpuRenderer struct {
	mu sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode

	width  int
	height int

	halfDepthEnabled bool

	pipelines map[string]*wgpu.RenderPipeline
	targets   map[string]*Target

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameEncoder *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
}

var _ Renderer = &wgpuRenderer{}

func newWGPURenderer(surfaceDescriptor *wgpu.SurfaceDescriptor) *wgpuRenderer {
	runtime.LockOSThread()

	r := &wgpuRenderer{
		instance:         wgpu.CreateInstance(nil),
		presentMode:      wgpu.PresentModeImmediate,
		halfDepthEnabled: true,
		pipelines:        make(map[string]*wgpu.RenderPipeline),
		targets:          make(map[string]*Target),
	}
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
	})
	if err != nil {
		panic(err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Playground Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	r.device = device
	r.queue = device.GetQueue()

	return r
}

func (r *wgpuRenderer) setPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeVSync:
		r.presentMode = wgpu.PresentModeFifo
	default:
		r.presentMode = wgpu.PresentModeImmediate
	}
}

func (r *wgpuRenderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	r.recreateTargets(width, height)
}

// recreateTargets releases and rebuilds the fixed offscreen target set at the
// given dimensions. Caller must hold the mutex.
func (r *wgpuRenderer) recreateTargets(width, height int) {
	for _, t := range r.targets {
		t.Release()
	}

	r.targets[TargetSceneColor] = r.createTarget(TargetSceneColor, width, height, wgpu.TextureFormatRGBA8Unorm, false)
	r.targets[TargetSceneDepth] = r.createTarget(TargetSceneDepth, width, height, wgpu.TextureFormatDepth24Plus, true)
	r.targets[TargetNormals] = r.createTarget(TargetNormals, width, height, wgpu.TextureFormatRGBA8Unorm, false)
	r.targets[TargetCompositeA] = r.createTarget(TargetCompositeA, width, height, wgpu.TextureFormatRGBA8Unorm, false)
	r.targets[TargetCompositeB] = r.createTarget(TargetCompositeB, width, height, wgpu.TextureFormatRGBA8Unorm, false)
	if r.halfDepthEnabled {
		r.targets[TargetHalfDepth] = r.createTarget(TargetHalfDepth, max(width/2, 1), max(height/2, 1), wgpu.TextureFormatR32Float, false)
	} else {
		delete(r.targets, TargetHalfDepth)
	}
}

func (r *wgpuRenderer) createTarget(label string, width, height int, format wgpu.TextureFormat, depth bool) *Target {
	usage := wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding
	_ = depth // depth targets share the same usage; both are sampled by effects

	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		panic(fmt.Sprintf("renderer: failed to create target %q: %v", label, err))
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(fmt.Sprintf("renderer: failed to create target view %q: %v", label, err))
	}

	return &Target{
		label:   label,
		format:  format,
		width:   width,
		height:  height,
		texture: tex,
		view:    view,
	}
}

func (r *wgpuRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *wgpuRenderer) SurfaceFormat() wgpu.TextureFormat {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surfaceFormat == nil {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return *r.surfaceFormat
}

func (r *wgpuRenderer) Target(name string) *Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targets[name]
}

func (r *wgpuRenderer) HasPipeline(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pipelines[key]
	return ok
}

func (r *wgpuRenderer) RegisterMeshPipeline(key string, vert, frag shader.Shader, target wgpu.TextureFormat, layouts []wgpu.BindGroupLayoutDescriptor) error {
	return r.registerPipeline(key, vert, frag, target, layouts, true)
}

func (r *wgpuRenderer) RegisterFullscreenPipeline(key string, vert, frag shader.Shader, target wgpu.TextureFormat, layouts []wgpu.BindGroupLayoutDescriptor) error {
	return r.registerPipeline(key, vert, frag, target, layouts, false)
}

func (r *wgpuRenderer) registerPipeline(key string, vert, frag shader.Shader, target wgpu.TextureFormat, layouts []wgpu.BindGroupLayoutDescriptor, mesh bool) error {
	if vert == nil || frag == nil {
		return errors.New("renderer: both vertex and fragment shaders are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pipelines[key]; ok {
		return nil
	}

	vs, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vert.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vert.Source(),
		},
	})
	if err != nil {
		return err
	}
	fs := vs
	if frag.Source() != vert.Source() {
		fs, err = r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label: frag.Key(),
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: frag.Source(),
			},
		})
		if err != nil {
			return err
		}
	}

	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(layouts))
	for i := range layouts {
		layout, layoutErr := r.device.CreateBindGroupLayout(&layouts[i])
		if layoutErr != nil {
			return fmt.Errorf("renderer: failed to create bind group layout %d for %q: %w", i, key, layoutErr)
		}
		bindGroupLayouts[i] = layout
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            key,
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}

	var vertexBuffers []wgpu.VertexBufferLayout
	var depthStencil *wgpu.DepthStencilState
	if mesh {
		vertexBuffers = []wgpu.VertexBufferLayout{
			{
				ArrayStride: meshVertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
				},
			},
		}
		depthStencil = &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	created, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  key + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vert.EntryPoint(),
			Buffers:    vertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: frag.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    target,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: depthStencil,
	})
	if err != nil {
		return err
	}

	r.pipelines[key] = created
	return nil
}

func (r *wgpuRenderer) InitMeshBuffers(provider binding.Provider, vertexData, indexData []byte, indexCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		r.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		r.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)
	return nil
}

func (r *wgpuRenderer) InitBindGroup(provider binding.Provider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		layout, err = r.device.CreateBindGroupLayout(&descriptor)
		if err != nil {
			return err
		}
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		bindingKey := int(entry.Binding)

		isTexture := entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined
		isSampler := entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined

		switch {
		case isTexture:
			tv := provider.TextureView(bindingKey)
			if tv == nil {
				return fmt.Errorf("renderer: texture binding %d on %q has no view", bindingKey, provider.Label())
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding:     entry.Binding,
				TextureView: tv,
			}
		case isSampler:
			samp := provider.Sampler(bindingKey)
			if samp == nil {
				return fmt.Errorf("renderer: sampler binding %d on %q has no sampler", bindingKey, provider.Label())
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Sampler: samp,
			}
		default:
			buf := provider.Buffer(bindingKey)
			if buf == nil {
				var err error
				buf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: provider.Label() + " Buffer",
					Size:  entry.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(bindingKey, buf)
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

func (r *wgpuRenderer) InitTextureView(provider binding.Provider, bindingKey int, stagingData common.TextureStagingData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		return err
	}
	provider.SetTextureView(bindingKey, view)

	return nil
}

func (r *wgpuRenderer) InitSampler(provider binding.Provider, bindingKey int, stagingData common.SamplerStagingData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	samp, err := r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.Coalesce(stagingData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(stagingData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(stagingData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(stagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(stagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(stagingData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(stagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(stagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(stagingData.MaxAnisotropy, 1),
		Compare:       stagingData.Compare,
	})
	if err != nil {
		return err
	}
	provider.SetSampler(bindingKey, samp)

	return nil
}

func (r *wgpuRenderer) WriteBuffer(provider binding.Provider, bindingKey int, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := provider.Buffer(bindingKey)
	if buf == nil {
		return
	}
	r.queue.WriteBuffer(buf, 0, data)
}

func (r *wgpuRenderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface != nil {
		return fmt.Errorf("renderer: previous frame surface not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	r.frameSurface = surfaceTexture
	r.frameView = view
	r.frameEncoder = encoder
	return nil
}

func (r *wgpuRenderer) BeginTargetPass(name string, clear *wgpu.Color, withDepth bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.targets[name]
	if !ok {
		return fmt.Errorf("renderer: unknown target %q", name)
	}
	return r.beginPass(target.View(), clear, withDepth)
}

func (r *wgpuRenderer) BeginSurfacePass(clear *wgpu.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameView == nil {
		return errors.New("renderer: no frame open")
	}
	return r.beginPass(r.frameView, clear, false)
}

// beginPass opens a render pass on the frame encoder. Caller must hold the mutex.
func (r *wgpuRenderer) beginPass(view *wgpu.TextureView, clear *wgpu.Color, withDepth bool) error {
	if r.frameEncoder == nil {
		return errors.New("renderer: no frame open")
	}
	if r.pass != nil {
		return errors.New("renderer: a pass is already open")
	}

	colorAttachment := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if clear != nil {
		colorAttachment.LoadOp = wgpu.LoadOpClear
		colorAttachment.ClearValue = *clear
	}

	descriptor := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{colorAttachment},
	}
	if withDepth {
		depth, ok := r.targets[TargetSceneDepth]
		if !ok {
			return errors.New("renderer: scene depth target missing")
		}
		descriptor.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            depth.View(),
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}

	r.pass = r.frameEncoder.BeginRenderPass(descriptor)
	return nil
}

func (r *wgpuRenderer) DrawMesh(pipelineKey string, mesh binding.Provider, groups ...binding.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pass == nil {
		return errors.New("renderer: no pass open")
	}
	pipeline, ok := r.pipelines[pipelineKey]
	if !ok {
		return fmt.Errorf("renderer: pipeline %q not found", pipelineKey)
	}

	r.pass.SetPipeline(pipeline)
	for i, g := range groups {
		r.pass.SetBindGroup(uint32(i), g.BindGroup(), nil)
	}
	r.pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	r.pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.pass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
	return nil
}

func (r *wgpuRenderer) DrawFullscreen(pipelineKey string, groups ...binding.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pass == nil {
		return errors.New("renderer: no pass open")
	}
	pipeline, ok := r.pipelines[pipelineKey]
	if !ok {
		return fmt.Errorf("renderer: pipeline %q not found", pipelineKey)
	}

	r.pass.SetPipeline(pipeline)
	for i, g := range groups {
		r.pass.SetBindGroup(uint32(i), g.BindGroup(), nil)
	}
	r.pass.Draw(3, 1, 0, 0)
	return nil
}

func (r *wgpuRenderer) EndPass() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pass == nil {
		return
	}
	r.pass.End()
	r.pass = nil
}

func (r *wgpuRenderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pass != nil {
		r.pass.End()
		r.pass = nil
	}
	if r.frameEncoder == nil {
		return
	}

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameEncoder = nil
		return
	}

	r.queue.Submit(commandBuffer)
	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
}

func (r *wgpuRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}
