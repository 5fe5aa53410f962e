package effect

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
)

// ssaoUniform mirrors the WGSL SSAOParams struct.
type ssaoUniform struct {
	BlendMode uint32
	Opacity   float32
	Time      float32
	Radius    float32
	Intensity float32
	Bias      float32
	Falloff   float32
	_         float32
}

type ssaoImpl struct {
	base

	radius    float32
	intensity float32
	bias      float32
	falloff   float32
}

var _ Effect = &ssaoImpl{}

// NewSSAO creates the screen-space ambient occlusion effect. It samples the
// view-space normal buffer, the scene depth buffer, and a procedural rotation
// noise texture, and multiplies the occlusion term under the running image.
//
// Returns:
//   - Effect: the SSAO effect
func NewSSAO() Effect {
	return &ssaoImpl{
		base:      base{blendMode: BlendMultiply, opacity: 1.0},
		radius:    8.0,
		intensity: 1.0,
		bias:      0.025,
		falloff:   0.002,
	}
}

func (e *ssaoImpl) Name() string       { return "ssao" }
func (e *ssaoImpl) Category() Category { return CategoryAmbientOcclusion }

func (e *ssaoImpl) FragmentSource() string {
	return shader.SSAOWGSL
}

func (e *ssaoImpl) UniformBytes(time float32) []byte {
	mode, opacity := e.blendHeader()
	e.mu.Lock()
	radius, intensity, bias, falloff := e.radius, e.intensity, e.bias, e.falloff
	e.mu.Unlock()

	return common.StructToBytes(ssaoUniform{
		BlendMode: mode,
		Opacity:   opacity,
		Time:      time,
		Radius:    radius,
		Intensity: intensity,
		Bias:      bias,
		Falloff:   falloff,
	})
}

func (e *ssaoImpl) UniformSize() uint64 {
	return 32
}

func (e *ssaoImpl) TextureKeys() []TextureKey {
	return []TextureKey{
		{Name: "normals"},
		{Name: "scene_depth", Depth: true},
		{Name: "noise"},
	}
}

func (e *ssaoImpl) Parameters() []Parameter {
	return []Parameter{
		{
			Name: "radius",
			Min:  1,
			Max:  32,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.radius
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.radius = clamp(v, 1, 32)
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
			Name: "bias",
			Min:  0,
			Max:  0.2,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.bias
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.bias = clamp(v, 0, 0.2)
			},
		},
		{
			Name: "falloff",
			Min:  0,
			Max:  0.05,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.falloff
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.falloff = clamp(v, 0, 0.05)
			},
		},
	}
}
