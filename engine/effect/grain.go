package effect

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
)

// grainUniform mirrors the WGSL GrainParams struct.
type grainUniform struct {
	BlendMode uint32
	Opacity   float32
	Time      float32
	Intensity float32
}

type grainImpl struct {
	base

	intensity float32
}

var _ Effect = &grainImpl{}

// NewGrain creates the animated film grain effect, reseeded from the elapsed
// time every frame.
//
// Returns:
//   - Effect: the film grain effect
func NewGrain() Effect {
	return &grainImpl{
		base:      base{blendMode: BlendOverlay, opacity: 0.5},
		intensity: 0.35,
	}
}

func (e *grainImpl) Name() string       { return "grain" }
func (e *grainImpl) Category() Category { return CategoryFilm }

func (e *grainImpl) FragmentSource() string {
	return shader.GrainWGSL
}

func (e *grainImpl) UniformBytes(time float32) []byte {
	mode, opacity := e.blendHeader()
	e.mu.Lock()
	intensity := e.intensity
	e.mu.Unlock()

	return common.StructToBytes(grainUniform{
		BlendMode: mode,
		Opacity:   opacity,
		Time:      time,
		Intensity: intensity,
	})
}

func (e *grainImpl) UniformSize() uint64 {
	return 16
}

func (e *grainImpl) TextureKeys() []TextureKey {
	return nil
}

func (e *grainImpl) Parameters() []Parameter {
	return []Parameter{
		{
			Name: "intensity",
			Min:  0,
			Max:  1,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.intensity
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.intensity = clamp(v, 0, 1)
			},
		},
	}
}
