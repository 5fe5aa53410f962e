package loader

import (
	"fmt"
	"io"
	"sync"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string][]MeshData
}

// Loader imports and caches 3D model files. The glTF and GLB formats are
// supported; results are cached by path so repeated loads of the same model
// are free.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is
	// returned. The format is detected from the file extension and contents
	// (.gltf JSON vs .glb binary).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - []MeshData: the extracted meshes
	//   - error: error if loading fails
	Load(path string) ([]MeshData, error)

	// LoadReader imports a model from a reader stream and caches it by the
	// given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - []MeshData: the extracted meshes
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) ([]MeshData, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - []MeshData: the cached meshes or nil
	Get(name string) []MeshData
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string][]MeshData),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) ([]MeshData, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	meshes, err := newGLTFImporter(parser).Import()
	if err != nil {
		return nil, fmt.Errorf("failed to import %q: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = meshes
	l.mu.Unlock()

	return meshes, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) ([]MeshData, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", name, err)
	}

	meshes, err := newGLTFImporter(parser).Import()
	if err != nil {
		return nil, fmt.Errorf("failed to import %q: %w", name, err)
	}

	l.mu.Lock()
	l.modelCache[name] = meshes
	l.mu.Unlock()

	return meshes, nil
}

func (l *loader) Get(name string) []MeshData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}
