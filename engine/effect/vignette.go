package effect

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
)

// vignetteUniform mirrors the WGSL VignetteParams struct.
type vignetteUniform struct {
	BlendMode uint32
	Opacity   float32
	Time      float32
	Offset    float32
	Darkness  float32
	_         [3]float32
}

type vignetteImpl struct {
	base

	offset   float32
	darkness float32
}

var _ Effect = &vignetteImpl{}

// NewVignette creates the vignette lens effect, darkening the frame toward
// its corners.
//
// Returns:
//   - Effect: the vignette effect
func NewVignette() Effect {
	return &vignetteImpl{
		base:     base{blendMode: BlendNormal, opacity: 1.0},
		offset:   1.0,
		darkness: 1.0,
	}
}

func (e *vignetteImpl) Name() string       { return "vignette" }
func (e *vignetteImpl) Category() Category { return CategoryLens }

func (e *vignetteImpl) FragmentSource() string {
	return shader.VignetteWGSL
}

func (e *vignetteImpl) UniformBytes(time float32) []byte {
	mode, opacity := e.blendHeader()
	e.mu.Lock()
	offset, darkness := e.offset, e.darkness
	e.mu.Unlock()

	return common.StructToBytes(vignetteUniform{
		BlendMode: mode,
		Opacity:   opacity,
		Time:      time,
		Offset:    offset,
		Darkness:  darkness,
	})
}

func (e *vignetteImpl) UniformSize() uint64 {
	return 32
}

func (e *vignetteImpl) TextureKeys() []TextureKey {
	return nil
}

func (e *vignetteImpl) Parameters() []Parameter {
	return []Parameter{
		{
			Name: "offset",
			Min:  0,
			Max:  2,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.offset
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.offset = clamp(v, 0, 2)
			},
		},
		{
			Name: "darkness",
			Min:  0,
			Max:  2,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.darkness
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.darkness = clamp(v, 0, 2)
			},
		},
	}
}
