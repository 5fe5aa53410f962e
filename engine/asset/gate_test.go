package asset

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateEmptyFiresImmediately(t *testing.T) {
	fired := 0
	gate := NewGate(nil, func() { fired++ })

	assert.Equal(t, 1, fired)
	assert.True(t, gate.Ready())
	assert.Empty(t, gate.Pending())
}

func TestGateFiresWhenLastAssetResolves(t *testing.T) {
	fired := 0
	gate := NewGate([]string{"area", "search", "lut"}, func() { fired++ })

	gate.Resolve("lut")
	gate.Resolve("area")
	assert.Zero(t, fired)
	assert.False(t, gate.Ready())
	assert.Len(t, gate.Pending(), 1)

	gate.Resolve("search")
	assert.Equal(t, 1, fired)
	assert.True(t, gate.Ready())
}

func TestGateResolveIsIdempotent(t *testing.T) {
	fired := 0
	gate := NewGate([]string{"area", "search"}, func() { fired++ })

	gate.Resolve("area")
	gate.Resolve("area")
	gate.Resolve("area")
	assert.Zero(t, fired)

	gate.Resolve("search")
	gate.Resolve("search")
	assert.Equal(t, 1, fired)
}

func TestGateIgnoresUnknownNames(t *testing.T) {
	fired := 0
	gate := NewGate([]string{"area"}, func() { fired++ })

	gate.Resolve("nope")
	assert.Zero(t, fired)

	gate.Resolve("area")
	assert.Equal(t, 1, fired)
}

func TestGateFailStallsPermanently(t *testing.T) {
	fired := 0
	gate := NewGate([]string{"area", "search"}, func() { fired++ })

	gate.Fail("area", errors.New("file not found"))
	gate.Resolve("search")

	assert.Zero(t, fired)
	assert.False(t, gate.Ready())
	// The failed asset stays pending.
	assert.Equal(t, []string{"area"}, gate.Pending())

	// Resolving a failed asset does not revive the gate.
	gate.Resolve("area")
	assert.Zero(t, fired)
}

func TestGateConcurrentResolvesFireOnce(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var mu sync.Mutex
	fired := 0
	gate := NewGate(names, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			gate.Resolve(name)
		}(name)
	}
	wg.Wait()

	require.True(t, gate.Ready())
	assert.Equal(t, 1, fired)
}
