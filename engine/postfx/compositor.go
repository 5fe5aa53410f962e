package postfx

import (
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"github.com/Carmen-Shannon/oxy-postfx/engine/effect"
)

// Composite is one built post-processing chain. It renders complete frames:
// the scene helper passes followed by every effect pass in order, with the
// final pass targeting the surface.
type Composite interface {
	// Render draws one frame through the chain.
	//
	// Parameters:
	//   - time: elapsed playground time in seconds
	//
	// Returns:
	//   - error: error if a pass fails
	Render(time float32) error

	// Effects returns the chain's effect names in pass order.
	//
	// Returns:
	//   - []string: the effect names
	Effects() []string

	// Release frees the chain's GPU resources. The composite must not be
	// rendered after release.
	Release()
}

// Compositor builds composites from ordered effect lists and renders the
// direct bypass path when no chain is installed.
type Compositor interface {
	// Init registers the shared pipelines and scene resources. Must be
	// called once before Build or DrawDirect.
	//
	// Returns:
	//   - error: error if pipeline or resource creation fails
	Init() error

	// UploadTexture decodes staging pixels into a GPU texture stored under
	// the given key. Effects reference these through their texture keys.
	//
	// Parameters:
	//   - key: the texture key
	//   - staging: the staging pixels
	//
	// Returns:
	//   - error: error if the upload fails
	UploadTexture(key string, staging common.TextureStagingData) error

	// Build assembles a composite over the given effects, in order.
	//
	// Parameters:
	//   - effects: the effects in pass order
	//
	// Returns:
	//   - Composite: the built chain
	//   - error: error if pipeline or resource creation fails
	Build(effects []effect.Effect) (Composite, error)

	// DrawDirect renders one frame without any effect chain: the scene pass
	// followed by a straight copy to the surface.
	//
	// Returns:
	//   - error: error if a pass fails
	DrawDirect() error

	// Resize reconfigures the surface and recreates the offscreen targets.
	// Composites built before a resize must be rebuilt.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)
}
