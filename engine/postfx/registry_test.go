package postfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
)

func TestRegistryAddAndGet(t *testing.T) {
	reg := NewRegistry()

	bloom := effect.NewBloom()
	require.NoError(t, reg.Add(bloom))

	got, err := reg.Get("bloom")
	require.NoError(t, err)
	assert.Same(t, bloom, got)
}

func TestRegistryDuplicateName(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Add(effect.NewBloom()))
	assert.Error(t, reg.Add(effect.NewBloom()))
}

func TestRegistryUnknownName(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("nope")
	assert.Error(t, err)

	_, err = reg.Enabled("nope")
	assert.Error(t, err)

	assert.Error(t, reg.SetEnabled("nope", true))
}

func TestRegistryNamesKeepRegistrationOrder(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Add(effect.NewGrain()))
	require.NoError(t, reg.Add(effect.NewBloom()))
	require.NoError(t, reg.Add(effect.NewSMAA()))

	assert.Equal(t, []string{"grain", "bloom", "smaa"}, reg.Names())
}

func TestRegistryEffectsStartDisabled(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Add(effect.NewBloom()))

	enabled, err := reg.Enabled("bloom")
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Empty(t, reg.Active())
}

func TestRegistryActiveFiltersInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Add(effect.NewGrain()))
	require.NoError(t, reg.Add(effect.NewBloom()))
	require.NoError(t, reg.Add(effect.NewVignette()))

	require.NoError(t, reg.SetEnabled("vignette", true))
	require.NoError(t, reg.SetEnabled("grain", true))

	active := reg.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "grain", active[0].Name())
	assert.Equal(t, "vignette", active[1].Name())

	require.NoError(t, reg.SetEnabled("grain", false))
	active = reg.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "vignette", active[0].Name())
}
