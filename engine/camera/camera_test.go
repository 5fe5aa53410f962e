package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()

	assert.InDelta(t, 45.0*math.Pi/180.0, float64(cam.Fov()), 1e-6)
	assert.Equal(t, float32(1), cam.Aspect())

	x, y, z := cam.Target()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Zero(t, z)
	assert.NotNil(t, cam.Provider())
}

func TestCameraPositionOrbitsTarget(t *testing.T) {
	cam := NewCamera(
		WithTarget(1, 2, 3),
		WithDistance(5),
		WithOrbit(0, 0),
	)

	// Yaw and pitch of zero put the eye straight down +Z from the target.
	x, y, z := cam.Position()
	assert.InDelta(t, 1, float64(x), 1e-5)
	assert.InDelta(t, 2, float64(y), 1e-5)
	assert.InDelta(t, 8, float64(z), 1e-5)
}

func TestCameraDragClampsPitch(t *testing.T) {
	cam := NewCamera(WithDistance(5), WithOrbit(0, 0))

	// A huge upward drag pins the pitch at the pole clamp instead of
	// flipping the camera over.
	cam.Drag(0, 1e6)

	_, y, _ := cam.Position()
	assert.InDelta(t, 5*math.Sin(1.5), float64(y), 1e-4)

	before := cam.ViewMatrix()
	cam.Drag(0, 100)
	assert.Equal(t, before, cam.ViewMatrix())
}

func TestCameraZoomClampsDistance(t *testing.T) {
	cam := NewCamera(WithDistance(2), WithOrbit(0, 0))

	// Zoom in far past the minimum distance.
	cam.Zoom(1e6)

	x, y, z := cam.Position()
	tx, ty, tz := cam.Target()
	dx, dy, dz := float64(x-tx), float64(y-ty), float64(z-tz)
	distance := math.Sqrt(dx*dx + dy*dy + dz*dz)
	assert.InDelta(t, 0.5, distance, 1e-5)

	// Zooming out works normally.
	cam.Zoom(-1)
	x, _, z = cam.Position()
	dx, dz = float64(x-tx), float64(z-tz)
	assert.Greater(t, math.Sqrt(dx*dx+dz*dz), 0.5)
}

func TestCameraViewMatrixCentersTarget(t *testing.T) {
	cam := NewCamera(WithTarget(3, 1, -2), WithDistance(6), WithOrbit(0.7, 0.2))

	view := cam.ViewMatrix()

	// The target lands on the view axis at -distance.
	x := view[0]*3 + view[4]*1 + view[8]*(-2) + view[12]
	y := view[1]*3 + view[5]*1 + view[9]*(-2) + view[13]
	z := view[2]*3 + view[6]*1 + view[10]*(-2) + view[14]

	assert.InDelta(t, 0, float64(x), 1e-4)
	assert.InDelta(t, 0, float64(y), 1e-4)
	assert.InDelta(t, -6, float64(z), 1e-4)
}

func TestCameraUniformCarriesEye(t *testing.T) {
	cam := NewCamera(WithTarget(0, 1, 0), WithDistance(4), WithOrbit(0.3, 0.5))

	uniform := cam.Uniform()
	x, y, z := cam.Position()

	assert.Equal(t, [4]float32{x, y, z, 1}, uniform.Eye)
	assert.Equal(t, cam.ViewMatrix(), uniform.View)
	assert.Equal(t, cam.ViewProjectionMatrix(), uniform.ViewProjection)
}

func TestCameraSetAspectRecomputesProjection(t *testing.T) {
	cam := NewCamera()

	before := cam.ViewProjectionMatrix()
	cam.SetAspect(16.0 / 9.0)
	after := cam.ViewProjectionMatrix()

	require.NotEqual(t, before, after)
	assert.InDelta(t, 16.0/9.0, float64(cam.Aspect()), 1e-6)
}
