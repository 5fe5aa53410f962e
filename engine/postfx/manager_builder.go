package postfx

import "github.com/Carmen-Shannon/oxy-postfx/engine/asset"

// ManagerBuilderOption is a functional option for configuring a Manager during construction.
type ManagerBuilderOption func(*managerImpl)

// WithOrdering replaces the default category ordering table.
//
// Parameters:
//   - ordering: the table to use
//
// Returns:
//   - ManagerBuilderOption: the option to apply
func WithOrdering(ordering OrderingTable) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.ordering = ordering
	}
}

// WithRegistry replaces the manager's effect registry, for sharing one
// registry across managers.
//
// Parameters:
//   - registry: the registry to use
//
// Returns:
//   - ManagerBuilderOption: the option to apply
func WithRegistry(registry Registry) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.registry = registry
	}
}

// WithAssetLoader replaces the manager's asset loader.
//
// Parameters:
//   - loader: the loader to use
//
// Returns:
//   - ManagerBuilderOption: the option to apply
func WithAssetLoader(loader asset.Loader) ManagerBuilderOption {
	return func(m *managerImpl) {
		m.loader = loader
	}
}

// WithDisabled starts the manager with the master toggle off.
//
// Returns:
//   - ManagerBuilderOption: the option to apply
func WithDisabled() ManagerBuilderOption {
	return func(m *managerImpl) {
		m.enabled = false
	}
}
