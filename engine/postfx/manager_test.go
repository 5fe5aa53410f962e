package postfx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/asset"
	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
	"github.com/Carmen-Shannon/oxy-postfx/engine/panel"
)

// fakeComposite records render and release calls.
type fakeComposite struct {
	names    []string
	renders  int
	released bool
}

func (c *fakeComposite) Render(time float32) error {
	c.renders++
	return nil
}

func (c *fakeComposite) Effects() []string { return c.names }

func (c *fakeComposite) Release() { c.released = true }

// fakeCompositor records every call so tests can assert on the manager's
// orchestration without a GPU.
type fakeCompositor struct {
	initCalls   int
	initErr     error
	uploads     map[string][]byte
	uploadErr   error
	builds      [][]string
	buildErr    error
	built       []*fakeComposite
	directDraws int
	resizes     [][2]int
}

func newFakeCompositor() *fakeCompositor {
	return &fakeCompositor{uploads: make(map[string][]byte)}
}

func (c *fakeCompositor) Init() error {
	c.initCalls++
	return c.initErr
}

func (c *fakeCompositor) UploadTexture(key string, staging common.TextureStagingData) error {
	if c.uploadErr != nil {
		return c.uploadErr
	}
	c.uploads[key] = staging.Pixels
	return nil
}

func (c *fakeCompositor) Build(effects []effect.Effect) (Composite, error) {
	names := make([]string, len(effects))
	for i, e := range effects {
		names[i] = e.Name()
	}
	c.builds = append(c.builds, names)

	if c.buildErr != nil {
		return nil, c.buildErr
	}
	composite := &fakeComposite{names: names}
	c.built = append(c.built, composite)
	return composite, nil
}

func (c *fakeCompositor) DrawDirect() error {
	c.directDraws++
	return nil
}

func (c *fakeCompositor) Resize(width, height int) {
	c.resizes = append(c.resizes, [2]int{width, height})
}

// fakeAssetLoader captures deliver continuations so tests control exactly
// when and in what order results arrive.
type fakeAssetLoader struct {
	delivers map[string]func(asset.Result)
}

func newFakeAssetLoader() *fakeAssetLoader {
	return &fakeAssetLoader{delivers: make(map[string]func(asset.Result))}
}

func (l *fakeAssetLoader) Fetch(name, path string, deliver func(asset.Result)) {
	l.delivers[name] = deliver
}

func (l *fakeAssetLoader) finish(name string) {
	l.delivers[name](asset.Result{
		Name:    name,
		Staging: &common.TextureStagingData{Pixels: []byte{0xff}, Width: 1, Height: 1},
	})
}

func (l *fakeAssetLoader) fail(name string, err error) {
	l.delivers[name](asset.Result{Name: name, Err: err})
}

func TestManagerInitWithoutAssetsBecomesReady(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	assert.Equal(t, StateUninitialized, mgr.State())
	require.NoError(t, mgr.Init(nil))

	assert.Equal(t, 1, compositor.initCalls)
	assert.Equal(t, StateReady, mgr.State())
}

func TestManagerInitTwiceErrors(t *testing.T) {
	mgr := NewManager(newFakeCompositor())

	require.NoError(t, mgr.Init(nil))
	assert.Error(t, mgr.Init(nil))
}

func TestManagerInitPropagatesCompositorError(t *testing.T) {
	compositor := newFakeCompositor()
	compositor.initErr = errors.New("no adapter")
	mgr := NewManager(compositor)

	assert.Error(t, mgr.Init(nil))
	assert.Equal(t, StateUninitialized, mgr.State())
}

func TestManagerRenderBeforeInitIsNoop(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Render(0))
	assert.Zero(t, compositor.directDraws)
}

func TestManagerRendersDirectWithNoEffectsEnabled(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.Render(0))

	assert.Equal(t, 1, compositor.directDraws)
	assert.Empty(t, compositor.builds)
}

func TestManagerBuildsChainInPassOrder(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	// Registered out of pass order on purpose.
	require.NoError(t, mgr.Register(effect.NewGrain()))
	require.NoError(t, mgr.Register(effect.NewSMAA()))
	require.NoError(t, mgr.Register(effect.NewBloom()))

	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.SetEffectEnabled("grain", true))
	require.NoError(t, mgr.SetEffectEnabled("smaa", true))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))

	require.NotEmpty(t, compositor.builds)
	assert.Equal(t, []string{"smaa", "bloom", "grain"}, compositor.builds[len(compositor.builds)-1])
}

func TestManagerRebuildReleasesPreviousComposite(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Register(effect.NewVignette()))
	require.NoError(t, mgr.Init(nil))

	require.NoError(t, mgr.SetEffectEnabled("bloom", true))
	require.Len(t, compositor.built, 1)

	require.NoError(t, mgr.SetEffectEnabled("vignette", true))
	require.Len(t, compositor.built, 2)

	assert.True(t, compositor.built[0].released)
	assert.False(t, compositor.built[1].released)
}

func TestManagerRendersCompositeWhenReadyAndEnabled(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))

	require.NoError(t, mgr.Render(0.5))

	require.Len(t, compositor.built, 1)
	assert.Equal(t, 1, compositor.built[0].renders)
	assert.Zero(t, compositor.directDraws)
}

func TestManagerMasterToggleBypassesComposite(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))

	mgr.SetEnabled(false)
	require.NoError(t, mgr.Render(0))

	assert.Equal(t, 1, compositor.directDraws)
	assert.Zero(t, compositor.built[0].renders)

	// The composite is kept, not torn down: re-enabling skips the rebuild.
	mgr.SetEnabled(true)
	require.NoError(t, mgr.Render(0))
	assert.Equal(t, 1, compositor.built[0].renders)
	assert.Len(t, compositor.built, 1)
}

func TestManagerBuildFailureFallsBackToDirect(t *testing.T) {
	compositor := newFakeCompositor()
	compositor.buildErr = errors.New("pipeline creation failed")
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))

	require.NoError(t, mgr.Render(0))
	assert.Equal(t, 1, compositor.directDraws)
}

func TestManagerAwaitsAssetsUntilAllResolve(t *testing.T) {
	compositor := newFakeCompositor()
	loader := newFakeAssetLoader()
	mgr := NewManager(compositor, WithAssetLoader(loader))

	require.NoError(t, mgr.Register(effect.NewSMAA()))
	require.NoError(t, mgr.Init(map[string]string{
		"smaa_area":   "area.png",
		"smaa_search": "search.png",
	}))
	assert.Equal(t, StateAwaitingAssets, mgr.State())

	// Direct path keeps working while assets load.
	require.NoError(t, mgr.Render(0))
	assert.Equal(t, 1, compositor.directDraws)

	// Results arrive in reverse fetch order.
	loader.finish("smaa_search")
	mgr.Tick()
	assert.Equal(t, StateAwaitingAssets, mgr.State())

	loader.finish("smaa_area")
	mgr.Tick()
	assert.Equal(t, StateReady, mgr.State())

	assert.Contains(t, compositor.uploads, "smaa_area")
	assert.Contains(t, compositor.uploads, "smaa_search")
}

func TestManagerFailedAssetStallsGate(t *testing.T) {
	compositor := newFakeCompositor()
	loader := newFakeAssetLoader()
	mgr := NewManager(compositor, WithAssetLoader(loader))

	require.NoError(t, mgr.Init(map[string]string{
		"lut":   "lut.png",
		"noise": "noise.png",
	}))

	loader.fail("lut", errors.New("file not found"))
	loader.finish("noise")
	mgr.Tick()

	assert.Equal(t, StateAwaitingAssets, mgr.State())

	// The manager never becomes ready but frames still draw.
	require.NoError(t, mgr.Render(0))
	assert.Equal(t, 1, compositor.directDraws)
}

func TestManagerResizeBufferedUntilReady(t *testing.T) {
	compositor := newFakeCompositor()
	loader := newFakeAssetLoader()
	mgr := NewManager(compositor, WithAssetLoader(loader))

	require.NoError(t, mgr.Init(map[string]string{"lut": "lut.png"}))

	mgr.Resize(640, 480)
	mgr.Resize(800, 600)
	assert.Empty(t, compositor.resizes)

	loader.finish("lut")
	mgr.Tick()

	// Only the latest buffered size is applied, once, at the ready
	// transition.
	assert.Equal(t, [][2]int{{800, 600}}, compositor.resizes)
}

func TestManagerResizeWhenReadyRebuildsChain(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))
	require.Len(t, compositor.built, 1)

	mgr.Resize(1920, 1080)

	assert.Equal(t, [][2]int{{1920, 1080}}, compositor.resizes)
	require.Len(t, compositor.built, 2)
	assert.True(t, compositor.built[0].released)
}

func TestManagerUnknownEffectName(t *testing.T) {
	mgr := NewManager(newFakeCompositor())

	_, err := mgr.Effect("nope")
	assert.Error(t, err)

	_, err = mgr.EffectEnabled("nope")
	assert.Error(t, err)

	assert.Error(t, mgr.SetEffectEnabled("nope", true))
}

func TestManagerDisposeIgnoresLateGateFire(t *testing.T) {
	compositor := newFakeCompositor()
	loader := newFakeAssetLoader()
	mgr := NewManager(compositor, WithAssetLoader(loader))

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))
	require.NoError(t, mgr.Init(map[string]string{"lut": "lut.png"}))

	mgr.Dispose()

	loader.finish("lut")
	mgr.Tick()

	assert.NotEqual(t, StateReady, mgr.State())
	assert.Empty(t, compositor.builds)
	require.NoError(t, mgr.Render(0))
	assert.Zero(t, compositor.directDraws)
}

func TestManagerDisposeReleasesComposite(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))
	require.NoError(t, mgr.SetEffectEnabled("bloom", true))
	require.Len(t, compositor.built, 1)

	mgr.Dispose()
	mgr.Dispose() // second call is a no-op

	assert.True(t, compositor.built[0].released)
}

func TestManagerBindPanelExposesControls(t *testing.T) {
	compositor := newFakeCompositor()
	mgr := NewManager(compositor)

	require.NoError(t, mgr.Register(effect.NewBloom()))
	require.NoError(t, mgr.Init(nil))

	ui := panel.NewPanel()
	mgr.BindPanel(ui)

	controls := ui.Controls()
	assert.Contains(t, controls, "effects")
	assert.Contains(t, controls, "bloom.enabled")
	assert.Contains(t, controls, "bloom.blend")
	assert.Contains(t, controls, "bloom.opacity")
	assert.Contains(t, controls, "bloom.threshold")

	// Panel writes round-trip into the manager.
	ui.SetToggle("bloom.enabled", true)
	enabled, err := mgr.EffectEnabled("bloom")
	require.NoError(t, err)
	assert.True(t, enabled)
	require.Len(t, compositor.built, 1)

	ui.SetToggle("effects", false)
	assert.False(t, mgr.Enabled())
}
