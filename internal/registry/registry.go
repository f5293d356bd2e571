package registry

import (
	"fmt"
	"sort"

	"github.com/containerd/errdefs"
	"github.com/specialistvlad/typesmith/internal/carpenter"
)

// Registry holds the runtime types synthesized during one session,
// keyed by type name. It is append-only: entries are never replaced or
// removed for the registry's lifetime.
type Registry struct {
	handles map[string]*carpenter.Handle
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{
		handles: make(map[string]*carpenter.Handle),
	}
}

// Register adds a synthesized handle under its type name. Registering
// a name twice is an error; no type is ever built twice in a session.
func (r *Registry) Register(name string, handle *carpenter.Handle) error {
	if _, ok := r.handles[name]; ok {
		return fmt.Errorf("type %q already registered: %w", name, errdefs.ErrAlreadyExists)
	}
	r.handles[name] = handle
	return nil
}

// Lookup returns the handle registered under name. The second return
// is false when the type has not been built, which mid-session is an
// expected state rather than an error.
func (r *Registry) Lookup(name string) (*carpenter.Handle, bool) {
	h, ok := r.handles[name]
	return h, ok
}

// Contains reports whether name has been registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.handles[name]
	return ok
}

// Names returns the registered type names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.handles)
}
