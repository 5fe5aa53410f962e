package light

// RigBuilderOption is a functional option for configuring a Rig during construction.
type RigBuilderOption func(*rigImpl)

// WithAmbient sets the ambient light color.
//
// Parameters:
//   - r, g, b: ambient color components
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithAmbient(r, g, b float32) RigBuilderOption {
	return func(rig *rigImpl) {
		rig.ambient = [3]float32{r, g, b}
	}
}

// WithSun sets the sun direction and color.
//
// Parameters:
//   - dirX, dirY, dirZ: sun travel direction (normalized during construction)
//   - r, g, b: sun color components
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithSun(dirX, dirY, dirZ, r, g, b float32) RigBuilderOption {
	return func(rig *rigImpl) {
		rig.sunDirection = [3]float32{dirX, dirY, dirZ}
		rig.sunColor = [3]float32{r, g, b}
	}
}

// WithSunIntensity sets the multiplier applied to the sun color.
//
// Parameters:
//   - intensity: the intensity multiplier
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithSunIntensity(intensity float32) RigBuilderOption {
	return func(rig *rigImpl) {
		rig.sunIntensity = intensity
	}
}

// WithExposure sets the exposure multiplier used by tone mapping.
//
// Parameters:
//   - exposure: the exposure value
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithExposure(exposure float32) RigBuilderOption {
	return func(rig *rigImpl) {
		rig.exposure = exposure
	}
}
