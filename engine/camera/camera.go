package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer/binding"
)

// cameraCount is an atomic counter used to generate unique binding provider names for each camera instance.
var cameraCount atomic.Uint64

const (
	minPitch    = -1.5
	maxPitch    = 1.5
	minDistance = 0.5
)

type orbitCameraImpl struct {
	mu *sync.Mutex

	target [3]float32
	up     [3]float32

	yaw      float32
	pitch    float32
	distance float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	dragSpeed float32
	zoomSpeed float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	provider binding.Provider
}

// Camera is an orbit camera that circles a fixed target point. Drag input
// adjusts yaw and pitch, scroll input adjusts the orbit distance, and the
// resulting view/projection matrices are packed into a uniform block for the
// scene pipelines.
type Camera interface {
	// Position returns the camera's current world-space position, derived from
	// the orbit yaw, pitch, and distance around the target.
	//
	// Returns:
	//   - x, y, z: camera position components
	Position() (x, y, z float32)

	// Target returns the orbit target point.
	//
	// Returns:
	//   - x, y, z: target position components
	Target() (x, y, z float32)

	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix
	// as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Uniform returns the packed GPU uniform block for the current frame.
	//
	// Returns:
	//   - CameraUniform: the view-projection, view, and eye data
	Uniform() CameraUniform

	// Provider returns the camera's binding provider for GPU resources.
	//
	// Returns:
	//   - binding.Provider: the binding provider
	Provider() binding.Provider

	// Drag rotates the camera around the target by the given screen-space
	// deltas, scaled by the drag speed. Pitch is clamped to avoid flipping
	// over the poles.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels since the last drag event
	Drag(dx, dy float64)

	// Zoom moves the camera toward or away from the target. Positive deltas
	// zoom in. Distance is clamped to a minimum to keep the target in front
	// of the near plane.
	//
	// Parameters:
	//   - delta: scroll wheel delta
	Zoom(delta float64)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetTarget sets the orbit target point and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: target position components
	SetTarget(x, y, z float32)
}

var _ Camera = &orbitCameraImpl{}

// NewCamera creates a new orbit Camera with default perspective settings,
// looking at the origin from a short distance.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &orbitCameraImpl{
		mu:        &sync.Mutex{},
		up:        [3]float32{0, 1, 0},
		yaw:       0.6,
		pitch:     0.35,
		distance:  6.0,
		fov:       45.0 * (math.Pi / 180.0), // radians
		aspect:    1.0,
		near:      0.1,
		far:       200.0,
		dragSpeed: 0.005,
		zoomSpeed: 0.4,
		provider: binding.NewProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *orbitCameraImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

// position derives the world-space eye point from the orbit parameters.
// Caller must hold the mutex.
func (c *orbitCameraImpl) position() (x, y, z float32) {
	cosPitch := float32(math.Cos(float64(c.pitch)))
	x = c.target[0] + c.distance*cosPitch*float32(math.Sin(float64(c.yaw)))
	y = c.target[1] + c.distance*float32(math.Sin(float64(c.pitch)))
	z = c.target[2] + c.distance*cosPitch*float32(math.Cos(float64(c.yaw)))
	return x, y, z
}

func (c *orbitCameraImpl) Target() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target[0], c.target[1], c.target[2]
}

func (c *orbitCameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *orbitCameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *orbitCameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *orbitCameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *orbitCameraImpl) Uniform() CameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()

	ex, ey, ez := c.position()
	return CameraUniform{
		ViewProjection: c.viewProjectionMatrix,
		View:           c.viewMatrix,
		Eye:            [4]float32{ex, ey, ez, 1},
	}
}

func (c *orbitCameraImpl) Provider() binding.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

func (c *orbitCameraImpl) Drag(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.yaw -= float32(dx) * c.dragSpeed
	c.pitch += float32(dy) * c.dragSpeed
	if c.pitch < minPitch {
		c.pitch = minPitch
	}
	if c.pitch > maxPitch {
		c.pitch = maxPitch
	}
	c.updateMatrices()
}

func (c *orbitCameraImpl) Zoom(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.distance -= float32(delta) * c.zoomSpeed
	if c.distance < minDistance {
		c.distance = minDistance
	}
	c.updateMatrices()
}

func (c *orbitCameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *orbitCameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, and view-projection
// matrices from the current orbit parameters. Caller must hold the mutex.
func (c *orbitCameraImpl) updateMatrices() {
	ex, ey, ez := c.position()

	common.LookAt(c.viewMatrix[:],
		ex, ey, ez,
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
