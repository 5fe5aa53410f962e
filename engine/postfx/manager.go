package postfx

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-postfx/engine/asset"
	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
	"github.com/Carmen-Shannon/oxy-postfx/engine/panel"
)

// State is the manager's lifecycle phase. Transitions are one-way:
// Uninitialized to AwaitingAssets on Init, AwaitingAssets to Ready when the
// asset gate fires. A failed asset load leaves the manager awaiting assets
// permanently; the direct draw path keeps working.
type State int

const (
	StateUninitialized State = iota
	StateAwaitingAssets
	StateReady
)

func (s State) String() string {
	switch s {
	case StateAwaitingAssets:
		return "awaiting-assets"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// managerImpl is the implementation of the Manager interface.
type managerImpl struct {
	mu sync.Mutex

	compositor Compositor
	registry   Registry
	ordering   OrderingTable
	loader     asset.Loader

	gate      asset.Gate
	state     State
	enabled   bool
	composite Composite

	pendingResize *[2]int
	disposed      bool

	qmu    sync.Mutex
	queued []asset.Result
}

// Manager is the post-processing facade: it owns the effect registry, the
// asset gate, and the installed composite, and rebuilds the chain whenever
// the enabled set changes. Rendering falls back to the direct scene draw
// whenever no chain is installed: before the gate fires, while the master
// toggle is off, or when every effect is disabled.
type Manager interface {
	// Register adds an effect to the registry. Effects start disabled.
	//
	// Parameters:
	//   - e: the effect to register
	//
	// Returns:
	//   - error: error if the name is already taken
	Register(e effect.Effect) error

	// Effects returns every registered effect name in registration order.
	//
	// Returns:
	//   - []string: the effect names
	Effects() []string

	// Effect returns a registered effect by name, for direct parameter access.
	//
	// Parameters:
	//   - name: the effect name
	//
	// Returns:
	//   - effect.Effect: the effect
	//   - error: error if no effect has that name
	Effect(name string) (effect.Effect, error)

	// EffectEnabled reports whether a named effect is enabled.
	//
	// Parameters:
	//   - name: the effect name
	//
	// Returns:
	//   - bool: true if enabled
	//   - error: error if no effect has that name
	EffectEnabled(name string) (bool, error)

	// SetEffectEnabled flips a named effect and rebuilds the chain. Before
	// the gate fires the flag is recorded but no rebuild happens.
	//
	// Parameters:
	//   - name: the effect name
	//   - enabled: the new flag value
	//
	// Returns:
	//   - error: error if no effect has that name
	SetEffectEnabled(name string, enabled bool) error

	// SetEnabled flips the master toggle. While off, frames render through
	// the direct draw path and the installed composite is kept.
	//
	// Parameters:
	//   - enabled: the new master toggle value
	SetEnabled(enabled bool)

	// Enabled returns the master toggle.
	//
	// Returns:
	//   - bool: true when post-processing is on
	Enabled() bool

	// State returns the current lifecycle phase.
	//
	// Returns:
	//   - State: the phase
	State() State

	// Init initializes the compositor and begins loading the gate assets.
	// With an empty asset map the manager becomes ready immediately.
	//
	// Parameters:
	//   - assets: texture keys mapped to image file paths
	//
	// Returns:
	//   - error: error if already initialized or compositor init fails
	Init(assets map[string]string) error

	// Tick applies completed asset loads. Call once per frame between
	// renders so GPU uploads and the ready transition happen at a frame
	// boundary rather than on a loader goroutine.
	Tick()

	// Render draws one frame: through the composite when ready and enabled,
	// through the direct path otherwise.
	//
	// Parameters:
	//   - time: elapsed playground time in seconds
	//
	// Returns:
	//   - error: error if a pass fails
	Render(time float32) error

	// Resize reconfigures the surface. Before the manager is ready the size
	// is buffered and applied when the gate fires.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// BindPanel exposes the master toggle and every effect's controls on a
	// panel binder.
	//
	// Parameters:
	//   - binder: the binder receiving the controls
	BindPanel(binder panel.Binder)

	// Dispose releases the installed composite and permanently disables the
	// manager. A gate firing after disposal is ignored.
	Dispose()
}

var _ Manager = &managerImpl{}

// NewManager creates a Manager over a compositor.
//
// Parameters:
//   - compositor: the compositor building and rendering chains
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the newly created manager
func NewManager(compositor Compositor, options ...ManagerBuilderOption) Manager {
	m := &managerImpl{
		compositor: compositor,
		registry:   NewRegistry(),
		ordering:   DefaultOrdering(),
		loader:     asset.NewLoader(),
		enabled:    true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *managerImpl) Register(e effect.Effect) error {
	return m.registry.Add(e)
}

func (m *managerImpl) Effects() []string {
	return m.registry.Names()
}

func (m *managerImpl) Effect(name string) (effect.Effect, error) {
	return m.registry.Get(name)
}

func (m *managerImpl) EffectEnabled(name string) (bool, error) {
	return m.registry.Enabled(name)
}

func (m *managerImpl) SetEffectEnabled(name string, enabled bool) error {
	if err := m.registry.SetEnabled(name, enabled); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuildLocked()
	return nil
}

func (m *managerImpl) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

func (m *managerImpl) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

func (m *managerImpl) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *managerImpl) Init(assets map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed {
		return fmt.Errorf("postfx: manager is disposed")
	}
	if m.state != StateUninitialized {
		return fmt.Errorf("postfx: manager already initialized")
	}

	if err := m.compositor.Init(); err != nil {
		return err
	}

	m.state = StateAwaitingAssets

	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}

	// The gate continuation runs with the manager lock held: synchronously
	// below when there are no assets, or from Tick when the last queued
	// result resolves.
	m.gate = asset.NewGate(names, m.becomeReadyLocked)

	for name, path := range assets {
		m.loader.Fetch(name, path, func(result asset.Result) {
			m.qmu.Lock()
			m.queued = append(m.queued, result)
			m.qmu.Unlock()
		})
	}

	return nil
}

// becomeReadyLocked is the gate continuation. Caller must hold the mutex.
func (m *managerImpl) becomeReadyLocked() {
	if m.disposed {
		return
	}

	m.state = StateReady

	if m.pendingResize != nil {
		m.compositor.Resize(m.pendingResize[0], m.pendingResize[1])
		m.pendingResize = nil
	}

	m.rebuildLocked()
}

// rebuildLocked tears down the installed composite and builds a new one from
// the enabled effects in pass order. A no-op before the manager is ready.
// Caller must hold the mutex.
func (m *managerImpl) rebuildLocked() {
	if m.state != StateReady {
		return
	}

	if m.composite != nil {
		m.composite.Release()
		m.composite = nil
	}

	ordered := m.ordering.Sort(m.registry.Active())
	if len(ordered) == 0 {
		return
	}

	composite, err := m.compositor.Build(ordered)
	if err != nil {
		log.Printf("postfx: failed to build composite, falling back to direct draw: %v", err)
		return
	}
	m.composite = composite
}

func (m *managerImpl) Tick() {
	m.qmu.Lock()
	results := m.queued
	m.queued = nil
	m.qmu.Unlock()

	if len(results) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed || m.gate == nil {
		return
	}

	for _, result := range results {
		if result.Err != nil {
			m.gate.Fail(result.Name, result.Err)
			continue
		}
		if err := m.compositor.UploadTexture(result.Name, *result.Staging); err != nil {
			m.gate.Fail(result.Name, err)
			continue
		}
		m.gate.Resolve(result.Name)
	}
}

func (m *managerImpl) Render(time float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed || m.state == StateUninitialized {
		return nil
	}

	if m.state == StateReady && m.enabled && m.composite != nil {
		return m.composite.Render(time)
	}
	return m.compositor.DrawDirect()
}

func (m *managerImpl) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed {
		return
	}

	if m.state != StateReady {
		m.pendingResize = &[2]int{width, height}
		return
	}

	m.compositor.Resize(width, height)
	m.rebuildLocked()
}

func (m *managerImpl) BindPanel(binder panel.Binder) {
	binder.BindToggle("effects",
		m.Enabled,
		func(v bool) error {
			m.SetEnabled(v)
			return nil
		},
	)

	modes := effect.BlendModes()
	modeNames := make([]string, len(modes))
	for i, mode := range modes {
		modeNames[i] = mode.String()
	}

	for _, name := range m.registry.Names() {
		e, err := m.registry.Get(name)
		if err != nil {
			continue
		}
		name := name

		binder.BindToggle(name+".enabled",
			func() bool {
				enabled, _ := m.EffectEnabled(name)
				return enabled
			},
			func(v bool) error {
				return m.SetEffectEnabled(name, v)
			},
		)

		binder.BindOption(name+".blend", modeNames,
			func() int { return int(e.BlendMode()) },
			func(i int) { e.SetBlendMode(effect.BlendMode(i)) },
		)

		binder.BindNumber(name+".opacity", 0, 1, e.Opacity, e.SetOpacity)

		for _, param := range e.Parameters() {
			binder.BindNumber(name+"."+param.Name, param.Min, param.Max, param.Get, param.Set)
		}
	}
}

func (m *managerImpl) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposed {
		return
	}
	m.disposed = true

	if m.composite != nil {
		m.composite.Release()
		m.composite = nil
	}
}
