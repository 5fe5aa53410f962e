package loader

// LoaderBuilderOption is a functional option for configuring a Loader during construction.
type LoaderBuilderOption func(*loader)

// WithPreloaded seeds the cache with already-extracted meshes under the given
// name. Useful for procedural geometry that should be retrievable alongside
// file-loaded models.
//
// Parameters:
//   - name: the cache key
//   - meshes: the meshes to cache
//
// Returns:
//   - LoaderBuilderOption: the option to apply
func WithPreloaded(name string, meshes []MeshData) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[name] = meshes
	}
}
