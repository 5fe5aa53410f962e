package effect

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/shader"
)

// smaaUniform mirrors the WGSL SMAAParams struct.
type smaaUniform struct {
	BlendMode     uint32
	Opacity       float32
	Time          float32
	EdgeThreshold float32
}

type smaaImpl struct {
	base

	edgeThreshold float32
}

var _ Effect = &smaaImpl{}

// NewSMAA creates the subpixel morphological antialiasing effect. It samples
// the precomputed area and search lookup textures loaded through the asset
// gate.
//
// Returns:
//   - Effect: the SMAA effect
func NewSMAA() Effect {
	return &smaaImpl{
		base:          base{blendMode: BlendNormal, opacity: 1.0},
		edgeThreshold: 0.1,
	}
}

func (e *smaaImpl) Name() string       { return "smaa" }
func (e *smaaImpl) Category() Category { return CategoryAntialiasing }

func (e *smaaImpl) FragmentSource() string {
	return shader.SMAAWGSL
}

func (e *smaaImpl) UniformBytes(time float32) []byte {
	mode, opacity := e.blendHeader()
	e.mu.Lock()
	threshold := e.edgeThreshold
	e.mu.Unlock()

	return common.StructToBytes(smaaUniform{
		BlendMode:     mode,
		Opacity:       opacity,
		Time:          time,
		EdgeThreshold: threshold,
	})
}

func (e *smaaImpl) UniformSize() uint64 {
	return 16
}

func (e *smaaImpl) TextureKeys() []TextureKey {
	return []TextureKey{
		{Name: "smaa_area"},
		{Name: "smaa_search"},
	}
}

func (e *smaaImpl) Parameters() []Parameter {
	return []Parameter{
		{
			Name: "edge_threshold",
			Min:  0.01,
			Max:  0.5,
			Get: func() float32 {
				e.mu.Lock()
				defer e.mu.Unlock()
				return e.edgeThreshold
			},
			Set: func(v float32) {
				e.mu.Lock()
				defer e.mu.Unlock()
				e.edgeThreshold = clamp(v, 0.01, 0.5)
			},
		},
	}
}
