package shader

// Stage identifies which pipeline stage a shader entry point belongs to.
type Stage int

const (
	// StageVertex indicates a vertex shader entry point.
	StageVertex Stage = iota

	// StageFragment indicates a fragment shader entry point.
	StageFragment
)

// shaderImpl is the implementation of the Shader interface.
type shaderImpl struct {
	key    string
	stage  Stage
	source string
	entry  string
}

// Shader is an immutable handle to a single WGSL entry point. A Shader carries
// the full module source; several Shaders may share one source string and
// differ only in stage and entry point (e.g. vs_main / fs_main in one module).
type Shader interface {
	// Key returns the unique identifier for this shader, used for module labels.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Stage returns the pipeline stage this shader's entry point targets.
	//
	// Returns:
	//   - Stage: the shader stage (vertex or fragment)
	Stage() Stage

	// Source returns the complete WGSL module source.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// EntryPoint returns the entry point function name within the module.
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint() string
}

var _ Shader = &shaderImpl{}

// NewShader creates a Shader handle from in-memory WGSL source.
// The default entry point is "vs_main" for vertex shaders and "fs_main"
// for fragment shaders.
//
// Parameters:
//   - key: unique identifier for this shader
//   - stage: the pipeline stage of the entry point
//   - source: the complete WGSL module source
//   - options: functional options for shader configuration
//
// Returns:
//   - Shader: the shader handle
func NewShader(key string, stage Stage, source string, options ...ShaderBuilderOption) Shader {
	s := &shaderImpl{
		key:    key,
		stage:  stage,
		source: source,
	}
	switch stage {
	case StageVertex:
		s.entry = "vs_main"
	case StageFragment:
		s.entry = "fs_main"
	}

	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *shaderImpl) Key() string {
	return s.key
}

func (s *shaderImpl) Stage() Stage {
	return s.stage
}

func (s *shaderImpl) Source() string {
	return s.source
}

func (s *shaderImpl) EntryPoint() string {
	return s.entry
}
