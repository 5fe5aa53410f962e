package effect

import "sync"

// Category groups effects for pass ordering. Effects in the same category
// keep their registration order relative to each other.
type Category string

const (
	CategoryAntialiasing     Category = "antialiasing"
	CategoryAmbientOcclusion Category = "ambient-occlusion"
	CategoryBloom            Category = "bloom"
	CategoryColor            Category = "color"
	CategoryLens             Category = "lens"
	CategoryFilm             Category = "film"
)

// BlendMode selects how an effect's output is combined with its input. The
// numeric values are written straight into the effect uniform block and
// matched by the shared blend_apply shader function.
type BlendMode uint32

const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendAdd
	BlendMultiply
	BlendOverlay
	BlendSoftLight
)

// blendModeNames maps every mode to its panel-facing name.
var blendModeNames = map[BlendMode]string{
	BlendNormal:    "normal",
	BlendScreen:    "screen",
	BlendAdd:       "add",
	BlendMultiply:  "multiply",
	BlendOverlay:   "overlay",
	BlendSoftLight: "soft-light",
}

// BlendModes returns every mode in numeric order, for panel option lists.
//
// Returns:
//   - []BlendMode: all blend modes
func BlendModes() []BlendMode {
	return []BlendMode{BlendNormal, BlendScreen, BlendAdd, BlendMultiply, BlendOverlay, BlendSoftLight}
}

func (m BlendMode) String() string {
	if name, ok := blendModeNames[m]; ok {
		return name
	}
	return "normal"
}

// TextureKey names an extra texture an effect samples beyond its pass input.
// Keys resolve against render targets and loaded assets by name.
type TextureKey struct {
	Name  string
	Depth bool
}

// Parameter describes one panel-tunable scalar on an effect.
type Parameter struct {
	Name string
	Min  float32
	Max  float32
	Get  func() float32
	Set  func(float32)
}

// Effect is a single post-processing pass: a fragment shader over the chain's
// running image, a uniform block whose first three fields are always blend
// mode, opacity, and time, and optionally extra textures.
type Effect interface {
	// Name returns the effect's unique registry name.
	//
	// Returns:
	//   - string: the effect name
	Name() string

	// Category returns the ordering category.
	//
	// Returns:
	//   - Category: the category
	Category() Category

	// BlendMode returns the current blend mode.
	//
	// Returns:
	//   - BlendMode: the blend mode
	BlendMode() BlendMode

	// SetBlendMode sets how the effect output combines with its input.
	//
	// Parameters:
	//   - mode: the blend mode
	SetBlendMode(mode BlendMode)

	// Opacity returns the current blend opacity in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// SetOpacity sets the blend opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the opacity
	SetOpacity(opacity float32)

	// FragmentSource returns the effect's complete WGSL source.
	//
	// Returns:
	//   - string: the WGSL source
	FragmentSource() string

	// UniformBytes packs the effect's uniform block for upload.
	//
	// Parameters:
	//   - time: elapsed playground time in seconds
	//
	// Returns:
	//   - []byte: the packed uniform data
	UniformBytes(time float32) []byte

	// UniformSize returns the byte size of the uniform block.
	//
	// Returns:
	//   - uint64: the uniform size in bytes
	UniformSize() uint64

	// TextureKeys returns the extra textures the effect samples, in binding
	// order. An empty slice means the effect only samples its pass input.
	//
	// Returns:
	//   - []TextureKey: the extra texture keys
	TextureKeys() []TextureKey

	// Parameters returns the effect's panel-tunable scalars.
	//
	// Returns:
	//   - []Parameter: the parameter descriptors
	Parameters() []Parameter
}

// base carries the blend state shared by every effect implementation.
type base struct {
	mu sync.Mutex

	blendMode BlendMode
	opacity   float32
}

func (b *base) BlendMode() BlendMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blendMode
}

func (b *base) SetBlendMode(mode BlendMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blendMode = mode
}

func (b *base) Opacity() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opacity
}

func (b *base) SetOpacity(opacity float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opacity = clamp(opacity, 0, 1)
}

// blendHeader returns the shared leading uniform fields under the lock.
func (b *base) blendHeader() (uint32, float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint32(b.blendMode), b.opacity
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
