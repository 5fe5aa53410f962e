package panel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelToggleRoundTrip(t *testing.T) {
	panel := NewPanel()

	value := false
	panel.BindToggle("effects",
		func() bool { return value },
		func(v bool) error {
			value = v
			return nil
		},
	)

	assert.False(t, panel.Toggle("effects"))
	panel.SetToggle("effects", true)
	assert.True(t, value)
	assert.True(t, panel.Toggle("effects"))
}

func TestPanelToggleSetError(t *testing.T) {
	panel := NewPanel()

	value := false
	panel.BindToggle("broken",
		func() bool { return value },
		func(v bool) error { return errors.New("nope") },
	)

	// A failing setter is logged and the value stays put.
	panel.SetToggle("broken", true)
	assert.False(t, value)
}

func TestPanelNumberClampsToBoundRange(t *testing.T) {
	panel := NewPanel()

	value := float32(0.5)
	panel.BindNumber("bloom.threshold", 0, 1,
		func() float32 { return value },
		func(v float32) { value = v },
	)

	panel.SetNumber("bloom.threshold", 5)
	assert.Equal(t, float32(1), value)

	panel.SetNumber("bloom.threshold", -5)
	assert.Equal(t, float32(0), value)

	panel.SetNumber("bloom.threshold", 0.3)
	assert.Equal(t, float32(0.3), panel.Number("bloom.threshold"))
}

func TestPanelOptionRangeChecked(t *testing.T) {
	panel := NewPanel()

	index := 0
	panel.BindOption("bloom.blend", []string{"normal", "screen", "add"},
		func() int { return index },
		func(i int) { index = i },
	)

	panel.SetOption("bloom.blend", 2)
	assert.Equal(t, 2, panel.Option("bloom.blend"))

	// Out-of-range indexes are ignored.
	panel.SetOption("bloom.blend", 3)
	assert.Equal(t, 2, index)
	panel.SetOption("bloom.blend", -1)
	assert.Equal(t, 2, index)
}

func TestPanelUnknownNames(t *testing.T) {
	panel := NewPanel()

	// Unknown names are logged and ignored on writes, zero-valued on reads.
	panel.SetToggle("ghost", true)
	panel.SetNumber("ghost", 1)
	panel.SetOption("ghost", 1)

	assert.False(t, panel.Toggle("ghost"))
	assert.Zero(t, panel.Number("ghost"))
	assert.Zero(t, panel.Option("ghost"))
}

func TestPanelControlsKeepBindingOrder(t *testing.T) {
	panel := NewPanel()

	panel.BindToggle("effects", func() bool { return false }, func(bool) error { return nil })
	panel.BindNumber("bloom.opacity", 0, 1, func() float32 { return 0 }, func(float32) {})
	panel.BindOption("bloom.blend", []string{"normal"}, func() int { return 0 }, func(int) {})
	// Rebinding an existing name does not duplicate it.
	panel.BindToggle("effects", func() bool { return true }, func(bool) error { return nil })

	assert.Equal(t, []string{"effects", "bloom.opacity", "bloom.blend"}, panel.Controls())
}
