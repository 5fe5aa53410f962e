package scene

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/camera"
	"github.com/Carmen-Shannon/oxy-postfx/engine/light"
	"github.com/Carmen-Shannon/oxy-postfx/engine/loader"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer/binding"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys registered by the scene.
const (
	PipelineScene   = "scene"
	PipelineNormals = "scene_normals"
)

// sceneCount is an atomic counter used to generate unique binding provider names for each scene instance.
var sceneCount atomic.Uint64

// sceneMesh holds the GPU resources for one draw-ready mesh.
type sceneMesh struct {
	mesh     binding.Provider
	material binding.Provider
}

type sceneImpl struct {
	mu sync.Mutex

	id     uint64
	camera camera.Camera
	lights light.Rig

	pending []loader.MeshData
	meshes  []sceneMesh

	initialized bool
}

// Scene owns the drawable objects, the camera, and the lighting rig, and
// issues mesh draw calls for both the lit color pass and the view-space
// normal helper pass.
type Scene interface {
	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Lights returns the scene's lighting rig.
	//
	// Returns:
	//   - light.Rig: the lighting rig
	Lights() light.Rig

	// AddMeshes queues extracted meshes for GPU upload. Meshes added before
	// Init are uploaded during Init; meshes added after are uploaded
	// immediately.
	//
	// Parameters:
	//   - r: the renderer, required for immediate upload after Init (may be nil before Init)
	//   - meshes: the meshes to add
	//
	// Returns:
	//   - error: error if GPU upload fails
	AddMeshes(r renderer.Renderer, meshes ...loader.MeshData) error

	// Init registers the scene and normal pipelines, creates camera and
	// lighting GPU resources, and uploads any queued meshes.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: error if pipeline or resource creation fails
	Init(r renderer.Renderer) error

	// Update writes the current camera and lighting uniform blocks to the GPU.
	// Should be called once per frame before drawing.
	//
	// Parameters:
	//   - r: the renderer
	Update(r renderer.Renderer)

	// Draw issues the lit color draw calls for every mesh. A render pass with
	// a depth attachment must be open.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: error if a draw call fails
	Draw(r renderer.Renderer) error

	// DrawNormals issues the view-space normal draw calls for every mesh.
	// A render pass with a depth attachment must be open.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawNormals(r renderer.Renderer) error
}

var _ Scene = &sceneImpl{}

// NewScene creates a Scene with a default orbit camera and lighting rig.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		id:     sceneCount.Load(),
		camera: camera.NewCamera(),
		lights: light.NewRig(),
	}
	for _, option := range options {
		option(s)
	}
	sceneCount.Add(1)
	return s
}

func (s *sceneImpl) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

func (s *sceneImpl) Lights() light.Rig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lights
}

func (s *sceneImpl) AddMeshes(r renderer.Renderer, meshes ...loader.MeshData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.pending = append(s.pending, meshes...)
		return nil
	}

	for i := range meshes {
		if err := s.uploadMesh(r, &meshes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *sceneImpl) Init(r renderer.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	sceneVert := shader.NewShader("scene_vs", shader.StageVertex, shader.SceneWGSL)
	sceneFrag := shader.NewShader("scene_fs", shader.StageFragment, shader.SceneWGSL)
	if err := r.RegisterMeshPipeline(PipelineScene, sceneVert, sceneFrag,
		r.Target(renderer.TargetSceneColor).Format(),
		[]wgpu.BindGroupLayoutDescriptor{
			renderer.CameraLayout(),
			renderer.ModelLayout(),
			renderer.LightsLayout(),
			renderer.MaterialLayout(),
		},
	); err != nil {
		return fmt.Errorf("scene: failed to register scene pipeline: %w", err)
	}

	normalVert := shader.NewShader("scene_normals_vs", shader.StageVertex, shader.NormalWGSL)
	normalFrag := shader.NewShader("scene_normals_fs", shader.StageFragment, shader.NormalWGSL)
	if err := r.RegisterMeshPipeline(PipelineNormals, normalVert, normalFrag,
		r.Target(renderer.TargetNormals).Format(),
		[]wgpu.BindGroupLayoutDescriptor{
			renderer.CameraLayout(),
			renderer.ModelLayout(),
		},
	); err != nil {
		return fmt.Errorf("scene: failed to register normal pipeline: %w", err)
	}

	if err := r.InitBindGroup(s.camera.Provider(), renderer.CameraLayout()); err != nil {
		return fmt.Errorf("scene: failed to init camera bind group: %w", err)
	}
	if err := r.InitBindGroup(s.lights.Provider(), renderer.LightsLayout()); err != nil {
		return fmt.Errorf("scene: failed to init lights bind group: %w", err)
	}

	for i := range s.pending {
		if err := s.uploadMesh(r, &s.pending[i]); err != nil {
			return err
		}
	}
	s.pending = nil
	s.initialized = true

	return nil
}

// uploadMesh creates the GPU buffers, texture, and bind groups for one mesh.
// Caller must hold the mutex.
func (s *sceneImpl) uploadMesh(r renderer.Renderer, data *loader.MeshData) error {
	name := "scene_" + strconv.FormatUint(s.id, 10) + "_" + data.Name + "_" + strconv.Itoa(len(s.meshes))

	meshProvider := binding.NewProvider(name)
	if err := r.InitMeshBuffers(meshProvider, data.VertexData, data.IndexData, data.IndexCount); err != nil {
		return fmt.Errorf("scene: failed to init mesh buffers for %q: %w", data.Name, err)
	}
	if err := r.InitBindGroup(meshProvider, renderer.ModelLayout()); err != nil {
		return fmt.Errorf("scene: failed to init model bind group for %q: %w", data.Name, err)
	}
	r.WriteBuffer(meshProvider, 0, common.StructToBytes(ModelUniform{Model: data.Transform}))

	materialProvider := binding.NewProvider(name + "_material")

	staging := data.Texture
	if staging == nil {
		// 1x1 white fallback so every mesh can share the textured pipeline.
		staging = &common.TextureStagingData{
			Pixels: []byte{255, 255, 255, 255},
			Width:  1,
			Height: 1,
		}
	}
	if err := r.InitTextureView(materialProvider, 2, *staging); err != nil {
		return fmt.Errorf("scene: failed to init texture for %q: %w", data.Name, err)
	}
	if err := r.InitSampler(materialProvider, 1, common.SamplerStagingData{}); err != nil {
		return fmt.Errorf("scene: failed to init sampler for %q: %w", data.Name, err)
	}
	if err := r.InitBindGroup(materialProvider, renderer.MaterialLayout()); err != nil {
		return fmt.Errorf("scene: failed to init material bind group for %q: %w", data.Name, err)
	}
	r.WriteBuffer(materialProvider, 0, common.StructToBytes(MaterialUniform{
		BaseColor: data.BaseColor,
		Factors:   [4]float32{0, 0.5, 0, 0},
	}))

	s.meshes = append(s.meshes, sceneMesh{
		mesh:     meshProvider,
		material: materialProvider,
	})

	return nil
}

func (s *sceneImpl) Update(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	r.WriteBuffer(s.camera.Provider(), 0, common.StructToBytes(s.camera.Uniform()))
	r.WriteBuffer(s.lights.Provider(), 0, common.StructToBytes(s.lights.Uniform()))
}

func (s *sceneImpl) Draw(r renderer.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.meshes {
		if err := r.DrawMesh(PipelineScene, m.mesh, s.camera.Provider(), m.mesh, s.lights.Provider(), m.material); err != nil {
			return err
		}
	}
	return nil
}

func (s *sceneImpl) DrawNormals(r renderer.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.meshes {
		if err := r.DrawMesh(PipelineNormals, m.mesh, s.camera.Provider(), m.mesh); err != nil {
			return err
		}
	}
	return nil
}
