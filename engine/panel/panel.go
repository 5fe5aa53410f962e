package panel

import (
	"log"
	"sync"
)

// Binder receives the tunable controls a subsystem exposes. Implementations
// render them however they like: a debug UI, a remote console, or plain logs.
type Binder interface {
	// BindToggle registers an on/off control.
	//
	// Parameters:
	//   - name: the control name
	//   - get: reads the current value
	//   - set: writes a new value; the returned error is surfaced to the user
	BindToggle(name string, get func() bool, set func(bool) error)

	// BindNumber registers a bounded scalar control.
	//
	// Parameters:
	//   - name: the control name
	//   - min, max: the value bounds
	//   - get: reads the current value
	//   - set: writes a new value
	BindNumber(name string, min, max float32, get func() float32, set func(float32))

	// BindOption registers a control choosing one of a fixed set of options.
	//
	// Parameters:
	//   - name: the control name
	//   - options: the option labels in display order
	//   - get: reads the index of the current option
	//   - set: selects an option by index
	BindOption(name string, options []string, get func() int, set func(int))
}

// toggleControl is one bound on/off control.
type toggleControl struct {
	get func() bool
	set func(bool) error
}

// numberControl is one bound scalar control.
type numberControl struct {
	min, max float32
	get      func() float32
	set      func(float32)
}

// optionControl is one bound option control.
type optionControl struct {
	options []string
	get     func() int
	set     func(int)
}

// panelImpl is the implementation of the Panel interface.
type panelImpl struct {
	mu sync.Mutex

	order   []string
	toggles map[string]toggleControl
	numbers map[string]numberControl
	options map[string]optionControl
}

// Panel is a Binder that stores bound controls and applies values pushed to
// it by name. It is the headless stand-in for a debug UI: input handlers or
// scripts drive it through Set calls.
type Panel interface {
	Binder

	// Controls returns every bound control name in binding order.
	//
	// Returns:
	//   - []string: the control names
	Controls() []string

	// SetToggle writes an on/off control. Unknown names are logged and ignored.
	//
	// Parameters:
	//   - name: the control name
	//   - value: the new value
	SetToggle(name string, value bool)

	// Toggle reads an on/off control. Unknown names return false.
	//
	// Parameters:
	//   - name: the control name
	//
	// Returns:
	//   - bool: the current value
	Toggle(name string) bool

	// SetNumber writes a scalar control, clamped to the bound range.
	// Unknown names are logged and ignored.
	//
	// Parameters:
	//   - name: the control name
	//   - value: the new value
	SetNumber(name string, value float32)

	// Number reads a scalar control. Unknown names return zero.
	//
	// Parameters:
	//   - name: the control name
	//
	// Returns:
	//   - float32: the current value
	Number(name string) float32

	// SetOption selects an option control by index. Out-of-range indexes and
	// unknown names are logged and ignored.
	//
	// Parameters:
	//   - name: the control name
	//   - index: the option index
	SetOption(name string, index int)

	// Option reads the selected index of an option control. Unknown names
	// return zero.
	//
	// Parameters:
	//   - name: the control name
	//
	// Returns:
	//   - int: the selected index
	Option(name string) int
}

var _ Panel = &panelImpl{}

// NewPanel creates an empty control panel.
//
// Returns:
//   - Panel: the new panel
func NewPanel() Panel {
	return &panelImpl{
		toggles: make(map[string]toggleControl),
		numbers: make(map[string]numberControl),
		options: make(map[string]optionControl),
	}
}

func (p *panelImpl) BindToggle(name string, get func() bool, set func(bool) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remember(name)
	p.toggles[name] = toggleControl{get: get, set: set}
}

func (p *panelImpl) BindNumber(name string, min, max float32, get func() float32, set func(float32)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remember(name)
	p.numbers[name] = numberControl{min: min, max: max, get: get, set: set}
}

func (p *panelImpl) BindOption(name string, options []string, get func() int, set func(int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remember(name)
	p.options[name] = optionControl{options: options, get: get, set: set}
}

// remember records a control name the first time it is bound. Caller must hold the mutex.
func (p *panelImpl) remember(name string) {
	if _, ok := p.toggles[name]; ok {
		return
	}
	if _, ok := p.numbers[name]; ok {
		return
	}
	if _, ok := p.options[name]; ok {
		return
	}
	p.order = append(p.order, name)
}

func (p *panelImpl) Controls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

func (p *panelImpl) SetToggle(name string, value bool) {
	p.mu.Lock()
	control, ok := p.toggles[name]
	p.mu.Unlock()

	if !ok {
		log.Printf("panel: no toggle control named %q", name)
		return
	}
	if err := control.set(value); err != nil {
		log.Printf("panel: failed to set %q: %v", name, err)
	}
}

func (p *panelImpl) Toggle(name string) bool {
	p.mu.Lock()
	control, ok := p.toggles[name]
	p.mu.Unlock()

	if !ok {
		return false
	}
	return control.get()
}

func (p *panelImpl) SetNumber(name string, value float32) {
	p.mu.Lock()
	control, ok := p.numbers[name]
	p.mu.Unlock()

	if !ok {
		log.Printf("panel: no number control named %q", name)
		return
	}
	if value < control.min {
		value = control.min
	}
	if value > control.max {
		value = control.max
	}
	control.set(value)
}

func (p *panelImpl) Number(name string) float32 {
	p.mu.Lock()
	control, ok := p.numbers[name]
	p.mu.Unlock()

	if !ok {
		return 0
	}
	return control.get()
}

func (p *panelImpl) SetOption(name string, index int) {
	p.mu.Lock()
	control, ok := p.options[name]
	p.mu.Unlock()

	if !ok {
		log.Printf("panel: no option control named %q", name)
		return
	}
	if index < 0 || index >= len(control.options) {
		log.Printf("panel: option index %d out of range for %q", index, name)
		return
	}
	control.set(index)
}

func (p *panelImpl) Option(name string) int {
	p.mu.Lock()
	control, ok := p.options[name]
	p.mu.Unlock()

	if !ok {
		return 0
	}
	return control.get()
}
