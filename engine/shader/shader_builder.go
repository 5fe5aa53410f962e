package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shaderImpl)

// WithEntryPoint overrides the default entry point function name.
//
// Parameters:
//   - entry: the entry point function name within the WGSL module
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithEntryPoint(entry string) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.entry = entry
	}
}
