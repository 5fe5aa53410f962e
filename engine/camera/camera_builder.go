package camera

import "math"

// CameraBuilderOption is a functional option for configuring a Camera during construction.
type CameraBuilderOption func(*orbitCameraImpl)

// WithTarget sets the orbit target point.
//
// Parameters:
//   - x, y, z: target position components
//
// Returns:
//   - CameraBuilderOption: the option to apply
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *orbitCameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithDistance sets the starting orbit distance.
//
// Parameters:
//   - distance: distance from the target in world units
//
// Returns:
//   - CameraBuilderOption: the option to apply
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *orbitCameraImpl) {
		if distance < minDistance {
			distance = minDistance
		}
		c.distance = distance
	}
}

// WithOrbit sets the starting yaw and pitch angles.
//
// Parameters:
//   - yaw: rotation around the vertical axis in radians
//   - pitch: elevation angle in radians, clamped to avoid pole flips
//
// Returns:
//   - CameraBuilderOption: the option to apply
func WithOrbit(yaw, pitch float32) CameraBuilderOption {
	return func(c *orbitCameraImpl) {
		c.yaw = yaw
		c.pitch = float32(math.Max(minPitch, math.Min(maxPitch, float64(pitch))))
	}
}

// WithFov sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: the option to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *orbitCameraImpl) {
		c.fov = fov
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: the option to apply
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *orbitCameraImpl) {
		c.near = near
		c.far = far
	}
}
