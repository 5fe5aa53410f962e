package postfx

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer/binding"
	"github.com/Carmen-Shannon/oxy-postfx/engine/scene"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys registered by the compositor.
const (
	pipelineBlit            = "blit_surface"
	pipelineDepthDownsample = "depth_downsample"
)

// buildCount is an atomic counter used to generate unique binding provider names per composite build.
var buildCount atomic.Uint64

// compositorTexture is one uploaded or procedural texture an effect can
// reference by key.
type compositorTexture struct {
	view  *wgpu.TextureView
	depth bool
}

// wgpuCompositor is the renderer-backed implementation of the Compositor interface.
type wgpuCompositor struct {
	mu sync.Mutex

	renderer renderer.Renderer
	scene    scene.Scene

	textures map[string]compositorTexture
	holders  []binding.Provider

	sampler       *wgpu.Sampler
	blitProvider  binding.Provider
	depthProvider binding.Provider

	initialized bool
}

var _ Compositor = &wgpuCompositor{}

// NewCompositor creates a Compositor over a renderer and the scene it draws.
//
// Parameters:
//   - r: the renderer
//   - s: the scene providing the base image and helper passes
//
// Returns:
//   - Compositor: the newly created compositor
func NewCompositor(r renderer.Renderer, s scene.Scene) Compositor {
	return &wgpuCompositor{
		renderer: r,
		scene:    s,
		textures: make(map[string]compositorTexture),
	}
}

func (c *wgpuCompositor) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := c.scene.Init(c.renderer); err != nil {
		return err
	}

	blitVert := shader.NewShader("blit_vs", shader.StageVertex, shader.BlitWGSL)
	blitFrag := shader.NewShader("blit_fs", shader.StageFragment, shader.BlitWGSL)
	if err := c.renderer.RegisterFullscreenPipeline(pipelineBlit, blitVert, blitFrag,
		c.renderer.SurfaceFormat(),
		[]wgpu.BindGroupLayoutDescriptor{renderer.BlitLayout(false)},
	); err != nil {
		return fmt.Errorf("postfx: failed to register blit pipeline: %w", err)
	}

	if half := c.renderer.Target(renderer.TargetHalfDepth); half != nil {
		downVert := shader.NewShader("depth_downsample_vs", shader.StageVertex, shader.DepthDownsampleWGSL)
		downFrag := shader.NewShader("depth_downsample_fs", shader.StageFragment, shader.DepthDownsampleWGSL)
		if err := c.renderer.RegisterFullscreenPipeline(pipelineDepthDownsample, downVert, downFrag,
			half.Format(),
			[]wgpu.BindGroupLayoutDescriptor{renderer.BlitLayout(true)},
		); err != nil {
			return fmt.Errorf("postfx: failed to register depth downsample pipeline: %w", err)
		}
	}

	samplerHolder := binding.NewProvider("postfx_sampler")
	if err := c.renderer.InitSampler(samplerHolder, 0, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}); err != nil {
		return fmt.Errorf("postfx: failed to create shared sampler: %w", err)
	}
	c.sampler = samplerHolder.Sampler(0)
	c.holders = append(c.holders, samplerHolder)

	if err := c.uploadTextureLocked("noise", rotationNoise(16)); err != nil {
		return err
	}

	if err := c.rebuildStaticProviders(); err != nil {
		return err
	}

	c.initialized = true
	return nil
}

// rebuildStaticProviders recreates the bind groups that reference offscreen
// target views, which change on every resize. Caller must hold the mutex.
func (c *wgpuCompositor) rebuildStaticProviders() error {
	if c.blitProvider != nil {
		c.blitProvider.Release()
	}
	c.blitProvider = binding.NewProvider("postfx_blit")
	c.blitProvider.SetSampler(0, c.sampler)
	c.blitProvider.SetTextureView(1, c.renderer.Target(renderer.TargetSceneColor).View())
	if err := c.renderer.InitBindGroup(c.blitProvider, renderer.BlitLayout(false)); err != nil {
		return fmt.Errorf("postfx: failed to init blit bind group: %w", err)
	}

	if c.depthProvider != nil {
		c.depthProvider.Release()
		c.depthProvider = nil
	}
	if c.renderer.Target(renderer.TargetHalfDepth) != nil {
		c.depthProvider = binding.NewProvider("postfx_depth_downsample")
		c.depthProvider.SetTextureView(1, c.renderer.Target(renderer.TargetSceneDepth).View())
		if err := c.renderer.InitBindGroup(c.depthProvider, renderer.BlitLayout(true)); err != nil {
			return fmt.Errorf("postfx: failed to init depth downsample bind group: %w", err)
		}
	}

	return nil
}

func (c *wgpuCompositor) UploadTexture(key string, staging common.TextureStagingData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploadTextureLocked(key, staging)
}

// uploadTextureLocked uploads staging pixels under a key. Caller must hold the mutex.
func (c *wgpuCompositor) uploadTextureLocked(key string, staging common.TextureStagingData) error {
	holder := binding.NewProvider("fx_tex_" + key)
	if err := c.renderer.InitTextureView(holder, 0, staging); err != nil {
		return fmt.Errorf("postfx: failed to upload texture %q: %w", key, err)
	}

	c.textures[key] = compositorTexture{view: holder.TextureView(0)}
	c.holders = append(c.holders, holder)
	return nil
}

// resolveView maps an effect texture key to a view: offscreen targets by
// their target names, then uploaded textures.
func (c *wgpuCompositor) resolveView(key effect.TextureKey) (*wgpu.TextureView, error) {
	switch key.Name {
	case renderer.TargetSceneColor, renderer.TargetSceneDepth, renderer.TargetNormals, renderer.TargetHalfDepth:
		target := c.renderer.Target(key.Name)
		if target == nil {
			return nil, fmt.Errorf("postfx: target %q not available", key.Name)
		}
		return target.View(), nil
	default:
		tex, ok := c.textures[key.Name]
		if !ok {
			return nil, fmt.Errorf("postfx: no texture uploaded for key %q", key.Name)
		}
		return tex.view, nil
	}
}

// fxPass is one effect pass in a built composite.
type fxPass struct {
	pipelineKey string
	effect      effect.Effect
	input       binding.Provider
	extras      binding.Provider
	target      string
}

// wgpuComposite is the renderer-backed implementation of the Composite interface.
type wgpuComposite struct {
	mu sync.Mutex

	renderer renderer.Renderer
	scene    scene.Scene

	passes        []fxPass
	needsNormals  bool
	runDownsample bool
	depthProvider binding.Provider

	released bool
}

var _ Composite = &wgpuComposite{}

func (c *wgpuCompositor) Build(effects []effect.Effect) (Composite, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	build := buildCount.Add(1)
	composite := &wgpuComposite{
		renderer:      c.renderer,
		scene:         c.scene,
		depthProvider: c.depthProvider,
		runDownsample: c.depthProvider != nil,
	}

	sourceFormat := c.renderer.Target(renderer.TargetSceneColor).Format()

	for i, e := range effects {
		final := i == len(effects)-1

		pipelineKey := "fx_" + e.Name()
		targetFormat := sourceFormat
		if final {
			pipelineKey += "_surface"
			targetFormat = c.renderer.SurfaceFormat()
		}

		layouts := []wgpu.BindGroupLayoutDescriptor{renderer.EffectInputLayout(e.UniformSize())}
		keys := e.TextureKeys()
		if len(keys) > 0 {
			depths := make([]bool, len(keys))
			for k, key := range keys {
				depths[k] = key.Depth
			}
			layouts = append(layouts, renderer.ExtraTextureLayout(depths))
		}

		if !c.renderer.HasPipeline(pipelineKey) {
			vert := shader.NewShader(pipelineKey+"_vs", shader.StageVertex, e.FragmentSource())
			frag := shader.NewShader(pipelineKey+"_fs", shader.StageFragment, e.FragmentSource())
			if err := c.renderer.RegisterFullscreenPipeline(pipelineKey, vert, frag, targetFormat, layouts); err != nil {
				composite.Release()
				return nil, fmt.Errorf("postfx: failed to register pipeline for %q: %w", e.Name(), err)
			}
		}

		sourceTarget := renderer.TargetSceneColor
		if i > 0 {
			sourceTarget = pingPongTarget(i - 1)
		}

		providerName := "fx_" + strconv.FormatUint(build, 10) + "_" + e.Name()
		input := binding.NewProvider(providerName)
		input.SetSampler(0, c.sampler)
		input.SetTextureView(1, c.renderer.Target(sourceTarget).View())
		if err := c.renderer.InitBindGroup(input, renderer.EffectInputLayout(e.UniformSize())); err != nil {
			composite.Release()
			return nil, fmt.Errorf("postfx: failed to init input bind group for %q: %w", e.Name(), err)
		}

		var extras binding.Provider
		if len(keys) > 0 {
			extras = binding.NewProvider(providerName + "_extras")
			depths := make([]bool, len(keys))
			for k, key := range keys {
				view, err := c.resolveView(key)
				if err != nil {
					composite.Release()
					return nil, err
				}
				extras.SetTextureView(k, view)
				depths[k] = key.Depth
			}
			if err := c.renderer.InitBindGroup(extras, renderer.ExtraTextureLayout(depths)); err != nil {
				composite.Release()
				return nil, fmt.Errorf("postfx: failed to init extras bind group for %q: %w", e.Name(), err)
			}
			for _, key := range keys {
				if key.Name == renderer.TargetNormals {
					composite.needsNormals = true
				}
			}
		}

		target := ""
		if !final {
			target = pingPongTarget(i)
		}

		composite.passes = append(composite.passes, fxPass{
			pipelineKey: pipelineKey,
			effect:      e,
			input:       input,
			extras:      extras,
			target:      target,
		})
	}

	return composite, nil
}

// pingPongTarget returns the intermediate target that effect pass i writes to.
func pingPongTarget(i int) string {
	if i%2 == 0 {
		return renderer.TargetCompositeA
	}
	return renderer.TargetCompositeB
}

func (c *wgpuCompositor) DrawDirect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return fmt.Errorf("postfx: compositor not initialized")
	}

	if err := c.renderer.BeginFrame(); err != nil {
		return err
	}
	defer func() {
		c.renderer.EndFrame()
		c.renderer.Present()
	}()

	c.scene.Update(c.renderer)

	if err := c.renderer.BeginTargetPass(renderer.TargetSceneColor, &wgpu.Color{R: 0.02, G: 0.02, B: 0.03, A: 1}, true); err != nil {
		return err
	}
	if err := c.scene.Draw(c.renderer); err != nil {
		return err
	}
	c.renderer.EndPass()

	if err := c.renderer.BeginSurfacePass(&wgpu.Color{A: 1}); err != nil {
		return err
	}
	if err := c.renderer.DrawFullscreen(pipelineBlit, c.blitProvider); err != nil {
		return err
	}
	c.renderer.EndPass()

	return nil
}

func (c *wgpuCompositor) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderer.Resize(width, height)
	if c.initialized {
		if err := c.rebuildStaticProviders(); err != nil {
			// Keep the old providers; the next rebuild will retry.
			return
		}
	}
}

func (c *wgpuComposite) Render(time float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return fmt.Errorf("postfx: composite has been released")
	}

	if err := c.renderer.BeginFrame(); err != nil {
		return err
	}
	defer func() {
		c.renderer.EndFrame()
		c.renderer.Present()
	}()

	c.scene.Update(c.renderer)

	if err := c.renderer.BeginTargetPass(renderer.TargetSceneColor, &wgpu.Color{R: 0.02, G: 0.02, B: 0.03, A: 1}, true); err != nil {
		return err
	}
	if err := c.scene.Draw(c.renderer); err != nil {
		return err
	}
	c.renderer.EndPass()

	if c.needsNormals {
		if err := c.renderer.BeginTargetPass(renderer.TargetNormals, &wgpu.Color{R: 0.5, G: 0.5, B: 1, A: 1}, true); err != nil {
			return err
		}
		if err := c.scene.DrawNormals(c.renderer); err != nil {
			return err
		}
		c.renderer.EndPass()
	}

	if c.runDownsample && c.depthProvider != nil {
		if err := c.renderer.BeginTargetPass(renderer.TargetHalfDepth, nil, false); err != nil {
			return err
		}
		if err := c.renderer.DrawFullscreen(pipelineDepthDownsample, c.depthProvider); err != nil {
			return err
		}
		c.renderer.EndPass()
	}

	for _, pass := range c.passes {
		c.renderer.WriteBuffer(pass.input, 2, pass.effect.UniformBytes(time))

		var err error
		if pass.target == "" {
			err = c.renderer.BeginSurfacePass(nil)
		} else {
			err = c.renderer.BeginTargetPass(pass.target, nil, false)
		}
		if err != nil {
			return err
		}

		groups := []binding.Provider{pass.input}
		if pass.extras != nil {
			groups = append(groups, pass.extras)
		}
		if err := c.renderer.DrawFullscreen(pass.pipelineKey, groups...); err != nil {
			return err
		}
		c.renderer.EndPass()
	}

	return nil
}

func (c *wgpuComposite) Effects() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.passes))
	for i, pass := range c.passes {
		names[i] = pass.effect.Name()
	}
	return names
}

func (c *wgpuComposite) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return
	}
	c.released = true

	for _, pass := range c.passes {
		pass.input.Release()
		if pass.extras != nil {
			pass.extras.Release()
		}
	}
	c.passes = nil
}

// rotationNoise generates a tiling texture of random 2D rotation vectors
// encoded into the red and green channels, used by the ambient occlusion
// sample ring.
func rotationNoise(size int) common.TextureStagingData {
	rng := rand.New(rand.NewSource(1))
	pixels := make([]byte, size*size*4)

	for i := 0; i < size*size; i++ {
		angle := rng.Float64() * 2 * math.Pi
		x := (math.Cos(angle) + 1) / 2
		y := (math.Sin(angle) + 1) / 2
		pixels[i*4+0] = byte(x * 255)
		pixels[i*4+1] = byte(y * 255)
		pixels[i*4+2] = 0
		pixels[i*4+3] = 255
	}

	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(size),
		Height: uint32(size),
	}
}
