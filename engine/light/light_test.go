package light

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRigDefaults(t *testing.T) {
	rig := NewRig()

	r, g, b := rig.Ambient()
	assert.Equal(t, [3]float32{0.08, 0.09, 0.12}, [3]float32{r, g, b})

	r, g, b = rig.SunColor()
	assert.Equal(t, [3]float32{1.0, 0.92, 0.8}, [3]float32{r, g, b})

	assert.Equal(t, float32(1), rig.Exposure())
	assert.NotNil(t, rig.Provider())
}

func TestRigSunDirectionNormalized(t *testing.T) {
	rig := NewRig(WithSun(0, -2, 0, 1, 1, 1))

	x, y, z := rig.SunDirection()
	assert.InDelta(t, 0, float64(x), 1e-6)
	assert.InDelta(t, -1, float64(y), 1e-6)
	assert.InDelta(t, 0, float64(z), 1e-6)

	rig.SetSunDirection(3, 0, 4)
	x, y, z = rig.SunDirection()
	length := math.Sqrt(float64(x*x + y*y + z*z))
	assert.InDelta(t, 1, length, 1e-6)
	assert.InDelta(t, 0.6, float64(x), 1e-6)
	assert.InDelta(t, 0.8, float64(z), 1e-6)
}

func TestRigZeroSunDirectionIgnored(t *testing.T) {
	rig := NewRig()

	bx, by, bz := rig.SunDirection()
	rig.SetSunDirection(0, 0, 0)
	x, y, z := rig.SunDirection()

	assert.Equal(t, [3]float32{bx, by, bz}, [3]float32{x, y, z})
}

func TestRigUniformPremultipliesIntensity(t *testing.T) {
	rig := NewRig(
		WithSun(0, -1, 0, 0.5, 0.25, 1.0),
		WithSunIntensity(2),
		WithExposure(1.5),
	)

	uniform := rig.Uniform()

	assert.Equal(t, [4]float32{1.0, 0.5, 2.0, 1}, uniform.SunColor)
	assert.Equal(t, float32(0), uniform.SunDirection[3])
	assert.Equal(t, float32(1), uniform.Ambient[3])
	assert.Equal(t, float32(1.5), uniform.Exposure)
}

func TestRigSetters(t *testing.T) {
	rig := NewRig()

	rig.SetAmbient(0.2, 0.3, 0.4)
	r, g, b := rig.Ambient()
	assert.Equal(t, [3]float32{0.2, 0.3, 0.4}, [3]float32{r, g, b})

	rig.SetSunColor(1, 0, 0)
	rig.SetSunIntensity(3)
	uniform := rig.Uniform()
	assert.Equal(t, [4]float32{3, 0, 0, 1}, uniform.SunColor)

	rig.SetExposure(0.7)
	assert.Equal(t, float32(0.7), rig.Exposure())
}
