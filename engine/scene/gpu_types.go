package scene

// ModelUniform is the per-mesh GPU transform block. Layout must match the
// WGSL Model struct.
type ModelUniform struct {
	Model [16]float32
}

// MaterialUniform is the per-mesh GPU material block. Layout must match the
// WGSL Material struct: base color followed by a packed factor vector
// (x: metallic, y: roughness, z and w unused).
type MaterialUniform struct {
	BaseColor [4]float32
	Factors   [4]float32
}
