package effect

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendModeNames(t *testing.T) {
	assert.Equal(t, "normal", BlendNormal.String())
	assert.Equal(t, "screen", BlendScreen.String())
	assert.Equal(t, "add", BlendAdd.String())
	assert.Equal(t, "multiply", BlendMultiply.String())
	assert.Equal(t, "overlay", BlendOverlay.String())
	assert.Equal(t, "soft-light", BlendSoftLight.String())
	assert.Equal(t, "normal", BlendMode(99).String())

	modes := BlendModes()
	require.Len(t, modes, 6)
	for i, mode := range modes {
		assert.Equal(t, BlendMode(i), mode)
	}
}

func TestEffectDefaults(t *testing.T) {
	cases := []struct {
		effect   Effect
		name     string
		category Category
		blend    BlendMode
		opacity  float32
	}{
		{NewSMAA(), "smaa", CategoryAntialiasing, BlendNormal, 1.0},
		{NewSSAO(), "ssao", CategoryAmbientOcclusion, BlendMultiply, 1.0},
		{NewBloom(), "bloom", CategoryBloom, BlendScreen, 1.0},
		{NewColorGrade(), "color-grade", CategoryColor, BlendNormal, 1.0},
		{NewVignette(), "vignette", CategoryLens, BlendNormal, 1.0},
		{NewGrain(), "grain", CategoryFilm, BlendOverlay, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.effect.Name())
			assert.Equal(t, tc.category, tc.effect.Category())
			assert.Equal(t, tc.blend, tc.effect.BlendMode())
			assert.Equal(t, tc.opacity, tc.effect.Opacity())
			assert.NotEmpty(t, tc.effect.FragmentSource())
		})
	}
}

func TestEffectUniformBytesMatchSize(t *testing.T) {
	for _, e := range []Effect{NewSMAA(), NewSSAO(), NewBloom(), NewColorGrade(), NewVignette(), NewGrain()} {
		t.Run(e.Name(), func(t *testing.T) {
			packed := e.UniformBytes(0)
			assert.Equal(t, e.UniformSize(), uint64(len(packed)))
			// Uniform blocks are padded to 16-byte boundaries.
			assert.Zero(t, e.UniformSize()%16)
		})
	}
}

func TestEffectUniformHeader(t *testing.T) {
	e := NewBloom()
	e.SetBlendMode(BlendAdd)
	e.SetOpacity(0.25)

	packed := e.UniformBytes(1.5)
	require.GreaterOrEqual(t, len(packed), 12)

	assert.Equal(t, uint32(BlendAdd), binary.LittleEndian.Uint32(packed[0:4]))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(packed[4:8])))
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(packed[8:12])))
}

func TestOpacityClamped(t *testing.T) {
	e := NewVignette()

	e.SetOpacity(2.5)
	assert.Equal(t, float32(1), e.Opacity())

	e.SetOpacity(-1)
	assert.Equal(t, float32(0), e.Opacity())
}

func TestParametersClampToDeclaredRange(t *testing.T) {
	for _, e := range []Effect{NewSMAA(), NewSSAO(), NewBloom(), NewColorGrade(), NewVignette(), NewGrain()} {
		for _, param := range e.Parameters() {
			t.Run(e.Name()+"."+param.Name, func(t *testing.T) {
				param.Set(param.Max + 100)
				assert.Equal(t, param.Max, param.Get())

				param.Set(param.Min - 100)
				assert.Equal(t, param.Min, param.Get())

				mid := (param.Min + param.Max) / 2
				param.Set(mid)
				assert.Equal(t, mid, param.Get())
			})
		}
	}
}

func TestEffectTextureKeys(t *testing.T) {
	assert.Equal(t, []TextureKey{{Name: "smaa_area"}, {Name: "smaa_search"}}, NewSMAA().TextureKeys())
	assert.Equal(t, []TextureKey{
		{Name: "normals"},
		{Name: "scene_depth", Depth: true},
		{Name: "noise"},
	}, NewSSAO().TextureKeys())
	assert.Equal(t, []TextureKey{{Name: "lut"}}, NewColorGrade().TextureKeys())

	assert.Empty(t, NewBloom().TextureKeys())
	assert.Empty(t, NewVignette().TextureKeys())
	assert.Empty(t, NewGrain().TextureKeys())
}
