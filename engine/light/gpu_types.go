package light

// RigUniform is the GPU-side lighting block consumed by the scene pipeline.
// Layout must match the WGSL Lights struct: ambient color, sun direction, and
// sun color as padded vec4s, followed by the exposure scalar padded to 16 bytes.
type RigUniform struct {
	Ambient      [4]float32
	SunDirection [4]float32
	SunColor     [4]float32
	Exposure     float32
	_            [3]float32
}
