package effect

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
)

// colorGradeUniform mirrors the WGSL ColorGradeParams struct.
type colorGradeUniform struct {
	BlendMode uint32
	Opacity   float32
	Time      float32
	LUTSize   float32
}

type colorGradeImpl struct {
	base

	lutSize float32
}

var _ Effect = &colorGradeImpl{}

// NewColorGrade creates the LUT color grading effect. It remaps colors
// through a 3D lookup table packed into the 2D texture loaded through the
// asset gate.
//
// Returns:
//   - Effect: the color grading effect
func NewColorGrade() Effect {
	return &colorGradeImpl{
		base:    base{blendMode: BlendNormal, opacity: 1.0},
		lutSize: 16,
	}
}

func (e *colorGradeImpl) Name() string       { return "color-grade" }
func (e *colorGradeImpl) Category() Category { return CategoryColor }

func (e *colorGradeImpl) FragmentSource() string {
	return shader.ColorGradeWGSL
}

func (e *colorGradeImpl) UniformBytes(time float32) []byte {
	mode, opacity := e.blendHeader()
	e.mu.Lock()
	lutSize := e.lutSize
	e.mu.Unlock()

	return common.StructToBytes(colorGradeUniform{
		BlendMode: mode,
		Opacity:   opacity,
		Time:      time,
		LUTSize:   lutSize,
	})
}

func (e *colorGradeImpl) UniformSize() uint64 {
	return 16
}

func (e *colorGradeImpl) TextureKeys() []TextureKey {
	return []TextureKey{
		{Name: "lut"},
	}
}

func (e *colorGradeImpl) Parameters() []Parameter {
	return []Parameter{
		{
			Name: "lut_size",
			Min:  2,
			Max:  64,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.lutSize
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.lutSize = clamp(v, 2, 64)
			},
		},
	}
}
