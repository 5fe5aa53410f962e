package effect

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
)

// bloomUniform mirrors the WGSL BloomParams struct.
type bloomUniform struct {
	BlendMode uint32
	Opacity   float32
	Time      float32
	Threshold float32
	Intensity float32
	Radius    float32
	Smoothing float32
	_         float32
}

type bloomImpl struct {
	base

	threshold float32
	intensity float32
	radius    float32
	smoothing float32
}

var _ Effect = &bloomImpl{}

// NewBloom creates the bloom effect: bright regions above the threshold are
// blurred with a ring kernel and screened over the running image.
//
// Returns:
//   - Effect: the bloom effect
func NewBloom() Effect {
	return &bloomImpl{
		base:      base{blendMode: BlendScreen, opacity: 1.0},
		threshold: 0.75,
		intensity: 1.0,
		radius:    4.0,
		smoothing: 0.1,
	}
}

func (e *bloomImpl) Name() string       { return "bloom" }
func (e *bloomImpl) Category() Category { return CategoryBloom }

func (e *bloomImpl) FragmentSource() string {
	return shader.BloomWGSL
}

func (e *bloomImpl) UniformBytes(time float32) []byte {
	mode, opacity := e.blendHeader()
	e.mu.Lock()
	threshold, intensity, radius, smoothing := e.threshold, e.intensity, e.radius, e.smoothing
	e.mu.Unlock()

	return common.StructToBytes(bloomUniform{
		BlendMode: mode,
		Opacity:   opacity,
		Time:      time,
		Threshold: threshold,
		Intensity: intensity,
		Radius:    radius,
		Smoothing: smoothing,
	})
}

func (e *bloomImpl) UniformSize() uint64 {
	return 32
}

func (e *bloomImpl) TextureKeys() []TextureKey {
	return nil
}

func (e *bloomImpl) Parameters() []Parameter {
	return []Parameter{
		{
			Name: "threshold",
			Min:  0,
			Max:  1,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.threshold
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.threshold = clamp(v, 0, 1)
			},
		},
		{
			Name: "intensity",
			Min:  0,
			Max:  4,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.intensity
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.intensity = clamp(v, 0, 4)
			},
		},
		{
			Name: "radius",
			Min:  1,
			Max:  16,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.radius
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.radius = clamp(v, 1, 16)
			},
		},
		{
			Name: "smoothing",
			Min:  0,
			Max:  1,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.smoothing
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.smoothing = clamp(v, 0, 1)
			},
		},
	}
}
