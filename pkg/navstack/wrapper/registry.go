package wrapper

import (
	"maps"
	"slices"

	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
)

// Container is what a wrapper function is told about the container it wraps.
type Container struct {
	Key  string
	Kind navnode.Kind

	// ActiveBranch is the active branch index of a Tab. Zero for panes.
	ActiveBranch int

	// VisibleRoles lists the pane slots the layout shows. Empty for tabs.
	VisibleRoles []navnode.Role
}

// Func renders the chrome of one container.
type Func func(c Container) (any, error)

// Resolver looks up wrapper functions by container key.
//
// HasWrapper is an optimization hint only: it must agree with Resolve, and
// callers behave the same whether or not they consult it.
type Resolver interface {
	Resolve(containerKey string) (Func, bool)
	HasWrapper(containerKey string) bool
}

// Registry is an explicit container key to wrapper mapping.
type Registry struct {
	wrappers map[string]Func
	fallback Func
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		wrappers: make(map[string]Func),
	}
}

// Register adds the wrapper for a container key.
func (r *Registry) Register(containerKey string, fn Func) *Registry {
	r.wrappers[containerKey] = fn
	return r
}

// Default sets the wrapper used for containers with no registered entry.
func (r *Registry) Default(fn Func) *Registry {
	r.fallback = fn
	return r
}

// Resolve returns the wrapper for containerKey, the default entry, or false
// when neither exists.
func (r *Registry) Resolve(containerKey string) (Func, bool) {
	if fn, ok := r.wrappers[containerKey]; ok && fn != nil {
		return fn, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

// HasWrapper reports whether Resolve would succeed for containerKey.
func (r *Registry) HasWrapper(containerKey string) bool {
	_, ok := r.Resolve(containerKey)
	return ok
}

// Keys returns the registered container keys, sorted.
func (r *Registry) Keys() []string {
	keys := slices.Collect(maps.Keys(r.wrappers))
	slices.Sort(keys)
	return keys
}
