package camera

// CameraUniform is the GPU-side camera block shared by the scene and normal
// pipelines. Layout must match the WGSL Camera struct: view-projection and
// view matrices followed by the eye position padded to 16 bytes.
type CameraUniform struct {
	ViewProjection [16]float32
	View           [16]float32
	Eye            [4]float32
}
