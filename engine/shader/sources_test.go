package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullscreenSourcesDeclareEntryPoints(t *testing.T) {
	sources := map[string]string{
		"blit":             BlitWGSL,
		"depth_downsample": DepthDownsampleWGSL,
		"smaa":             SMAAWGSL,
		"ssao":             SSAOWGSL,
		"bloom":            BloomWGSL,
		"vignette":         VignetteWGSL,
		"color_grade":      ColorGradeWGSL,
		"grain":            GrainWGSL,
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, src, "fn vs_main", "vertex entry point")
			assert.Contains(t, src, "fn fs_main", "fragment entry point")
		})
	}
}

func TestEffectSourcesApplyBlend(t *testing.T) {
	for name, src := range map[string]string{
		"smaa":        SMAAWGSL,
		"ssao":        SSAOWGSL,
		"bloom":       BloomWGSL,
		"vignette":    VignetteWGSL,
		"color_grade": ColorGradeWGSL,
		"grain":       GrainWGSL,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, src, "blend_apply(")
			// The shared uniform header leads every params struct.
			assert.Contains(t, src, "blend_mode: u32")
			assert.Contains(t, src, "opacity: f32")
			assert.Contains(t, src, "time: f32")
		})
	}
}

func TestSceneSourcesDeclareMeshEntryPoints(t *testing.T) {
	for name, src := range map[string]string{
		"scene":   SceneWGSL,
		"normals": NormalWGSL,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, src, "fn vs_main")
			assert.Contains(t, src, "fn fs_main")
			assert.Contains(t, src, "@location(0) position")
		})
	}
}

func TestDepthSourcesLoadInsteadOfSample(t *testing.T) {
	// Depth textures pair with a filtering sampler nowhere: both depth
	// consumers fetch texels directly.
	for name, src := range map[string]string{
		"depth_downsample": DepthDownsampleWGSL,
		"ssao":             SSAOWGSL,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, src, "texture_depth_2d")
			assert.Contains(t, src, "textureLoad(depth_tex")
			assert.False(t, strings.Contains(src, "textureSample(depth_tex"), "depth textures must not be sampled")
		})
	}
}
