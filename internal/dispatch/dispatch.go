// Package dispatch allocates unique, stable action references for
// dynamically created menu items and routes their invocations to bound
// callbacks.
package dispatch

import (
	"github.com/google/uuid"

	"github.com/example/menubridge/internal/menutree"
)

const actionPrefix = "menubridge:item:"

// Handler receives the custom ID of a selected item.
type Handler func(itemID string)

type binding struct {
	itemID string
	fn     Handler
}

// Dispatcher implements menutree.Target for dynamic items. Every Allocate
// call yields an action reference never used before in this process, so an
// item's identity survives title changes and reordering.
type Dispatcher struct {
	bindings map[string]binding
}

// New constructs an empty Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{bindings: make(map[string]binding)}
}

// Allocate binds a fresh action reference to fn for the given item ID and
// returns the reference to install on the menu item.
func (d *Dispatcher) Allocate(itemID string, fn Handler) menutree.ActionRef {
	action := actionPrefix + uuid.NewString()
	d.bindings[action] = binding{itemID: itemID, fn: fn}
	return menutree.ActionRef{Target: d, Action: action}
}

// Release discards the binding for action. Invocations of a released action
// are silently dropped.
func (d *Dispatcher) Release(action string) {
	delete(d.bindings, action)
}

// Perform routes an action invocation to its bound callback.
func (d *Dispatcher) Perform(action string, _ *menutree.Item) {
	if b, ok := d.bindings[action]; ok && b.fn != nil {
		b.fn(b.itemID)
	}
}

// Len reports the number of live bindings.
func (d *Dispatcher) Len() int {
	return len(d.bindings)
}
