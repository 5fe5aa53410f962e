package light

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-postfx/engine/renderer/binding"
)

// rigCount is an atomic counter used to generate unique binding provider names for each rig instance.
var rigCount atomic.Uint64

type rigImpl struct {
	mu *sync.Mutex

	ambient      [3]float32
	sunDirection [3]float32
	sunColor     [3]float32
	sunIntensity float32
	exposure     float32

	provider binding.Provider
}

// Rig is the scene's lighting setup: a single directional sun plus an ambient
// term, with a global exposure applied by the scene shader's tone mapping.
type Rig interface {
	// Ambient returns the ambient light color.
	//
	// Returns:
	//   - r, g, b: ambient color components
	Ambient() (r, g, b float32)

	// SunDirection returns the normalized direction the sun light travels in.
	//
	// Returns:
	//   - x, y, z: direction components
	SunDirection() (x, y, z float32)

	// SunColor returns the sun light color before the intensity multiplier.
	//
	// Returns:
	//   - r, g, b: sun color components
	SunColor() (r, g, b float32)

	// Exposure returns the exposure multiplier applied during tone mapping.
	//
	// Returns:
	//   - float32: the exposure value
	Exposure() float32

	// Uniform returns the packed GPU uniform block for the current settings.
	//
	// Returns:
	//   - RigUniform: the lighting data
	Uniform() RigUniform

	// Provider returns the rig's binding provider for GPU resources.
	//
	// Returns:
	//   - binding.Provider: the binding provider
	Provider() binding.Provider

	// SetAmbient sets the ambient light color.
	//
	// Parameters:
	//   - r, g, b: ambient color components
	SetAmbient(r, g, b float32)

	// SetSunDirection sets the sun travel direction. The vector is normalized;
	// a zero vector is ignored.
	//
	// Parameters:
	//   - x, y, z: direction components
	SetSunDirection(x, y, z float32)

	// SetSunColor sets the sun light color.
	//
	// Parameters:
	//   - r, g, b: sun color components
	SetSunColor(r, g, b float32)

	// SetSunIntensity sets the multiplier applied to the sun color.
	//
	// Parameters:
	//   - intensity: the intensity multiplier
	SetSunIntensity(intensity float32)

	// SetExposure sets the exposure multiplier used by tone mapping.
	//
	// Parameters:
	//   - exposure: the exposure value
	SetExposure(exposure float32)
}

var _ Rig = &rigImpl{}

// NewRig creates a lighting rig with a warm overhead sun and dim ambient,
// suitable as a starting point for an unlit scene.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:           &sync.Mutex{},
		ambient:      [3]float32{0.08, 0.09, 0.12},
		sunDirection: [3]float32{-0.4, -1.0, -0.3},
		sunColor:     [3]float32{1.0, 0.92, 0.8},
		sunIntensity: 2.0,
		exposure:     1.0,
		provider: binding.NewProvider(
			"lights_" + strconv.FormatUint(rigCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(r)
	}
	normalize(&r.sunDirection)
	rigCount.Add(1)
	return r
}

func (r *rigImpl) Ambient() (float32, float32, float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ambient[0], r.ambient[1], r.ambient[2]
}

func (r *rigImpl) SunDirection() (float32, float32, float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sunDirection[0], r.sunDirection[1], r.sunDirection[2]
}

func (r *rigImpl) SunColor() (float32, float32, float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sunColor[0], r.sunColor[1], r.sunColor[2]
}

func (r *rigImpl) Exposure() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exposure
}

func (r *rigImpl) Uniform() RigUniform {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RigUniform{
		Ambient:      [4]float32{r.ambient[0], r.ambient[1], r.ambient[2], 1},
		SunDirection: [4]float32{r.sunDirection[0], r.sunDirection[1], r.sunDirection[2], 0},
		SunColor: [4]float32{
			r.sunColor[0] * r.sunIntensity,
			r.sunColor[1] * r.sunIntensity,
			r.sunColor[2] * r.sunIntensity,
			1,
		},
		Exposure: r.exposure,
	}
}

func (r *rigImpl) Provider() binding.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.provider
}

func (r *rigImpl) SetAmbient(red, green, blue float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ambient = [3]float32{red, green, blue}
}

func (r *rigImpl) SetSunDirection(x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dir := [3]float32{x, y, z}
	if dir[0] == 0 && dir[1] == 0 && dir[2] == 0 {
		return
	}
	normalize(&dir)
	r.sunDirection = dir
}

func (r *rigImpl) SetSunColor(red, green, blue float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sunColor = [3]float32{red, green, blue}
}

func (r *rigImpl) SetSunIntensity(intensity float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sunIntensity = intensity
}

func (r *rigImpl) SetExposure(exposure float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exposure = exposure
}

func normalize(v *[3]float32) {
	length := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if length == 0 {
		return
	}
	v[0] /= length
	v[1] /= length
	v[2] /= length
}
