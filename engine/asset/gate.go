package asset

import (
	"log"
	"sync"
)

// gateImpl is the implementation of the Gate interface.
type gateImpl struct {
	mu sync.Mutex

	pending map[string]bool
	failed  map[string]error

	once    sync.Once
	onReady func()
}

// Gate is a countdown join over a fixed set of named assets. Each asset is
// resolved exactly once; when the last one resolves, the ready continuation
// fires exactly once. A failed asset is logged and permanently stalls the
// gate: the continuation never fires, and the owner keeps running in whatever
// state it was in.
type Gate interface {
	// Pending returns the names of assets that have not yet resolved,
	// including failed ones.
	//
	// Returns:
	//   - []string: the unresolved asset names
	Pending() []string

	// Ready reports whether every asset has resolved and the continuation
	// has fired.
	//
	// Returns:
	//   - bool: true once the gate has fired
	Ready() bool

	// Resolve marks a named asset as loaded. Resolving an unknown or
	// already-resolved name is a no-op. When the final pending asset
	// resolves, the ready continuation runs on the resolving goroutine.
	//
	// Parameters:
	//   - name: the asset name to resolve
	Resolve(name string)

	// Fail marks a named asset as permanently failed. The error is logged
	// and the gate will never fire.
	//
	// Parameters:
	//   - name: the asset name that failed
	//   - err: the load error
	Fail(name string, err error)
}

var _ Gate = &gateImpl{}

// NewGate creates a Gate over the given asset names. If names is empty the
// continuation fires immediately.
//
// Parameters:
//   - names: the asset names to wait for
//   - onReady: the continuation to run once all assets resolve
//
// Returns:
//   - Gate: the newly created gate
func NewGate(names []string, onReady func()) Gate {
	g := &gateImpl{
		pending: make(map[string]bool, len(names)),
		failed:  make(map[string]error),
		onReady: onReady,
	}
	for _, name := range names {
		g.pending[name] = true
	}

	if len(g.pending) == 0 {
		g.fire()
	}
	return g
}

func (g *gateImpl) Pending() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, 0, len(g.pending))
	for name := range g.pending {
		names = append(names, name)
	}
	return names
}

func (g *gateImpl) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending) == 0 && len(g.failed) == 0
}

func (g *gateImpl) Resolve(name string) {
	g.mu.Lock()

	if !g.pending[name] {
		g.mu.Unlock()
		return
	}
	delete(g.pending, name)

	done := len(g.pending) == 0 && len(g.failed) == 0
	g.mu.Unlock()

	if done {
		g.fire()
	}
}

func (g *gateImpl) Fail(name string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.pending[name] {
		return
	}
	g.failed[name] = err
	log.Printf("asset %q failed to load, gate will not fire: %v", name, err)
}

// fire runs the ready continuation exactly once.
func (g *gateImpl) fire() {
	g.once.Do(func() {
		if g.onReady != nil {
			g.onReady()
		}
	})
}
