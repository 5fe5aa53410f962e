// package common contains plain shared data types used throughout the playground.
// They are not interface-wrapped structs, just commonly passed value types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds decoded RGBA pixel data pending GPU upload.
// Pixels must be 4 bytes per pixel in row-major order.
type TextureStagingData struct {
	// Pixels is the raw RGBA pixel data, 4 bytes per pixel.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// SamplerStagingData holds sampler configuration pending GPU creation.
// Zero-valued fields fall back to linear filtering with repeat addressing
// when the sampler is created (see Coalesce).
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW control texture coordinate wrapping per axis.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter control magnification and minification filtering.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter controls mipmap level filtering.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp bound the level-of-detail range.
	LodMinClamp, LodMaxClamp float32
	// Compare selects the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy caps anisotropic filtering. 1 disables it.
	MaxAnisotropy uint16
}
