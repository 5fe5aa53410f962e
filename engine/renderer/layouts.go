package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Canonical bind group layout descriptors shared between pipeline creation
// and bind group initialization. WebGPU matches layouts structurally, so the
// same descriptor used in both places guarantees compatibility.

// CameraLayout describes group(0) of the mesh passes: one uniform buffer
// holding view-projection, view, and eye position (two mat4 + one vec4).
func CameraLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "camera_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, 144),
		},
	}
}

// ModelLayout describes group(1) of the mesh passes: the model matrix.
func ModelLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "model_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex, 64),
		},
	}
}

// LightsLayout describes group(2) of the lit pass: ambient, sun direction,
// sun color, and exposure (four vec4).
func LightsLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "lights_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageFragment, 64),
		},
	}
}

// MaterialLayout describes group(3) of the lit pass: material factors,
// sampler, and base color texture.
func MaterialLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "material_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageFragment, 32),
			samplerEntry(1),
			textureEntry(2, wgpu.TextureSampleTypeFloat),
		},
	}
}

// EffectInputLayout describes group(0) of every effect pass: the shared
// sampler, the previous pass's color output, and the effect uniform block.
//
// Parameters:
//   - uniformSize: byte size of the effect's uniform struct
func EffectInputLayout(uniformSize uint64) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "effect_input_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			samplerEntry(0),
			textureEntry(1, wgpu.TextureSampleTypeFloat),
			uniformEntry(2, wgpu.ShaderStageFragment, uniformSize),
		},
	}
}

// ExtraTextureLayout describes group(1) of an effect pass: one texture per
// declared extra binding, in declaration order. Depth entries bind the scene
// depth buffer with the depth sample type.
//
// Parameters:
//   - depth: per-binding flags, true when the texture is a depth texture
func ExtraTextureLayout(depth []bool) wgpu.BindGroupLayoutDescriptor {
	entries := make([]wgpu.BindGroupLayoutEntry, len(depth))
	for i, isDepth := range depth {
		sampleType := wgpu.TextureSampleTypeFloat
		if isDepth {
			sampleType = wgpu.TextureSampleTypeDepth
		}
		entries[i] = textureEntry(uint32(i), sampleType)
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "effect_extras_layout",
		Entries: entries,
	}
}

// BlitLayout describes the source group of the blit and depth downsample
// passes. Color sources bind a sampler and the texture; depth sources bind
// only the texture, read with textureLoad.
//
// Parameters:
//   - depth: true when the source is a depth texture
func BlitLayout(depth bool) wgpu.BindGroupLayoutDescriptor {
	if depth {
		return wgpu.BindGroupLayoutDescriptor{
			Label: "depth_blit_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				textureEntry(1, wgpu.TextureSampleTypeDepth),
			},
		}
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label: "blit_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			samplerEntry(0),
			textureEntry(1, wgpu.TextureSampleTypeFloat),
		},
	}
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

func samplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		},
	}
}

func textureEntry(binding uint32, sampleType wgpu.TextureSampleType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    sampleType,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}
