package postfx

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
)

// registryImpl is the implementation of the Registry interface.
type registryImpl struct {
	mu sync.RWMutex

	order   []string
	effects map[string]effect.Effect
	enabled map[string]bool
}

// Registry holds the installed effects in registration order alongside their
// enabled flags. Registration order is the tiebreaker when the ordering
// table ranks two effects equally.
type Registry interface {
	// Add registers an effect under its name. Effects start disabled.
	//
	// Parameters:
	//   - e: the effect to register
	//
	// Returns:
	//   - error: error if an effect with the same name is already registered
	Add(e effect.Effect) error

	// Get returns a registered effect by name.
	//
	// Parameters:
	//   - name: the effect name
	//
	// Returns:
	//   - effect.Effect: the effect
	//   - error: error if no effect has that name
	Get(name string) (effect.Effect, error)

	// Names returns every registered effect name in registration order.
	//
	// Returns:
	//   - []string: the effect names
	Names() []string

	// Enabled reports whether a named effect is enabled.
	//
	// Parameters:
	//   - name: the effect name
	//
	// Returns:
	//   - bool: true if enabled
	//   - error: error if no effect has that name
	Enabled(name string) (bool, error)

	// SetEnabled flips a named effect's enabled flag.
	//
	// Parameters:
	//   - name: the effect name
	//   - enabled: the new flag value
	//
	// Returns:
	//   - error: error if no effect has that name
	SetEnabled(name string, enabled bool) error

	// Active returns the enabled effects in registration order.
	//
	// Returns:
	//   - []effect.Effect: the enabled effects
	Active() []effect.Effect
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty effect registry.
//
// Returns:
//   - Registry: the new registry
func NewRegistry() Registry {
	return &registryImpl{
		effects: make(map[string]effect.Effect),
		enabled: make(map[string]bool),
	}
}

func (r *registryImpl) Add(e effect.Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := e.Name()
	if _, ok := r.effects[name]; ok {
		return fmt.Errorf("postfx: effect %q already registered", name)
	}

	r.order = append(r.order, name)
	r.effects[name] = e
	r.enabled[name] = false
	return nil
}

func (r *registryImpl) Get(name string) (effect.Effect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("postfx: unknown effect %q", name)
	}
	return e, nil
}

func (r *registryImpl) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *registryImpl) Enabled(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.effects[name]; !ok {
		return false, fmt.Errorf("postfx: unknown effect %q", name)
	}
	return r.enabled[name], nil
}

func (r *registryImpl) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.effects[name]; !ok {
		return fmt.Errorf("postfx: unknown effect %q", name)
	}
	r.enabled[name] = enabled
	return nil
}

func (r *registryImpl) Active() []effect.Effect {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]effect.Effect, 0, len(r.order))
	for _, name := range r.order {
		if r.enabled[name] {
			active = append(active, r.effects[name])
		}
	}
	return active
}
