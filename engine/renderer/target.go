package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Names of the renderer-owned offscreen targets. Targets are created on
// surface configuration and recreated on every resize.
const (
	// TargetSceneColor receives the lit scene pass output.
	TargetSceneColor = "scene_color"

	// TargetSceneDepth is the scene depth buffer, sampleable by effects.
	TargetSceneDepth = "scene_depth"

	// TargetNormals receives the view-space normal helper pass output.
	TargetNormals = "normals"

	// TargetHalfDepth is the optional half-resolution depth reduction.
	TargetHalfDepth = "half_depth"

	// TargetCompositeA and TargetCompositeB are the ping-pong color buffers
	// the effect chain reads from and writes to in alternation.
	TargetCompositeA = "composite_a"
	TargetCompositeB = "composite_b"
)

// Target is an offscreen render target: a texture plus its view.
type Target struct {
	label  string
	format wgpu.TextureFormat
	width  int
	height int

	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// Label returns the target's debug label.
func (t *Target) Label() string {
	return t.label
}

// Format returns the target's texture format.
func (t *Target) Format() wgpu.TextureFormat {
	return t.format
}

// Size returns the target dimensions in pixels.
func (t *Target) Size() (width, height int) {
	return t.width, t.height
}

// View returns the target's texture view for binding or attachment.
func (t *Target) View() *wgpu.TextureView {
	return t.view
}

// Release frees the target's GPU texture and view. Safe to call twice.
func (t *Target) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
