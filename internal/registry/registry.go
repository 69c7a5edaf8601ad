// Package registry associates caller-supplied item identifiers with the
// action references allocated for dynamically created menu items.
package registry

import "github.com/example/menubridge/internal/menutree"

// Registry maps custom item IDs to their action-dispatch references.
// Registering an existing ID overwrites the previous binding; callers own
// the responsibility of keeping IDs they still want addressable distinct.
// The registry is confined to the menu owner goroutine and needs no locking.
type Registry struct {
	refs map[string]menutree.ActionRef
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{refs: make(map[string]menutree.ActionRef)}
}

// Register binds id to ref, replacing any previous binding.
func (r *Registry) Register(id string, ref menutree.ActionRef) {
	r.refs[id] = ref
}

// Unregister removes the binding for id, if any.
func (r *Registry) Unregister(id string) {
	delete(r.refs, id)
}

// Lookup returns the action reference bound to id.
func (r *Registry) Lookup(id string) (menutree.ActionRef, bool) {
	ref, ok := r.refs[id]
	return ref, ok
}

// Len reports the number of live bindings.
func (r *Registry) Len() int {
	return len(r.refs)
}
