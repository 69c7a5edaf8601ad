// Package bridge routes decoded host requests against the menu tree: it
// synthesizes dynamic items and submenus, applies updates and removals, and
// raises notifications back toward the host.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/example/menubridge/internal/dispatch"
	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/menutree"
	"github.com/example/menubridge/internal/protocol"
	"github.com/example/menubridge/internal/registry"
)

// Notifier carries notifications from the bridge to the host. AskHandled
// blocks for the host's verdict; Emit is fire-and-forget.
type Notifier interface {
	AskHandled(name string) bool
	Emit(name string, payload interface{})
}

// Bridge owns the dynamic-item machinery around a menu tree. All methods
// must run on the menu owner goroutine; see Loop.
type Bridge struct {
	root     *menutree.Node
	reg      *registry.Registry
	disp     *dispatch.Dispatcher
	notifier Notifier
	onChange func()
}

// New constructs a Bridge over root. The notifier receives the
// menu-item-selected notifications raised by dynamic items.
func New(root *menutree.Node, notifier Notifier) *Bridge {
	return &Bridge{
		root:     root,
		reg:      registry.New(),
		disp:     dispatch.New(),
		notifier: notifier,
	}
}

// Root exposes the menu tree for the rendering layer. Callers must only
// touch it from the owner goroutine.
func (b *Bridge) Root() *menutree.Node {
	return b.root
}

// Registry exposes the custom-ID registry.
func (b *Bridge) Registry() *registry.Registry {
	return b.reg
}

// SetOnChange registers a callback invoked after every successful mutation,
// used by the rendering layer to refresh its mirror of the tree.
func (b *Bridge) SetOnChange(fn func()) {
	b.onChange = fn
}

func (b *Bridge) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

// AddMenuItem creates a dynamic item in the menu identified by args.MenuID.
// It reports false when the menu cannot be located.
func (b *Bridge) AddMenuItem(args protocol.AddMenuItemArgs) bool {
	menu := menutree.FindMenu(b.root, args.MenuID)
	if menu == nil {
		logging.Debugf("bridge: addMenuItem: menu %q not found", args.MenuID)
		return false
	}

	ref := b.disp.Allocate(args.ItemID, b.itemSelected)
	b.reg.Register(args.ItemID, ref)

	enabled := true
	if args.Enabled != nil {
		enabled = *args.Enabled
	}
	item := &menutree.Item{
		Title:       args.Title,
		Enabled:     enabled,
		Key:         args.KeyEquivalent,
		Modifiers:   menutree.ParseModifiers(args.KeyModifiers),
		Action:      ref,
		Represented: args.ItemID,
	}
	menu.Insert(item, indexOrAppend(args.Index))
	logging.Debugf("bridge: added item %q to menu %q", args.ItemID, args.MenuID)
	b.changed()
	return true
}

// AddSubmenu creates an empty submenu under the menu identified by
// args.ParentMenuID. The submenu ID is stored as the branch item's
// represented object so nested submenus resolve recursively.
func (b *Bridge) AddSubmenu(args protocol.AddSubmenuArgs) bool {
	parent := menutree.FindMenu(b.root, args.ParentMenuID)
	if parent == nil {
		logging.Debugf("bridge: addSubmenu: menu %q not found", args.ParentMenuID)
		return false
	}

	item := &menutree.Item{
		Title:       args.Title,
		Enabled:     true,
		Represented: args.SubmenuID,
		Submenu:     &menutree.Node{Title: args.Title},
	}
	parent.Insert(item, indexOrAppend(args.Index))
	logging.Debugf("bridge: added submenu %q under %q", args.SubmenuID, args.ParentMenuID)
	b.changed()
	return true
}

// RemoveMenuItem detaches the item carrying itemID as its represented
// object and releases its registry and dispatch bindings. Standard system
// items carry no represented object and are therefore not addressable here.
func (b *Bridge) RemoveMenuItem(itemID string) bool {
	item := menutree.FindItemByID(b.root, itemID)
	if item == nil {
		return false
	}
	b.root.Detach(item)
	if ref, ok := b.reg.Lookup(itemID); ok {
		b.disp.Release(ref.Action)
	}
	b.reg.Unregister(itemID)
	logging.Debugf("bridge: removed item %q", itemID)
	b.changed()
	return true
}

// UpdateMenuItem applies a sparse patch: absent fields leave the current
// value untouched.
func (b *Bridge) UpdateMenuItem(args protocol.UpdateMenuItemArgs) bool {
	item := menutree.FindItemByID(b.root, args.ItemID)
	if item == nil {
		return false
	}
	if args.Title != nil {
		item.Title = *args.Title
		if item.Submenu != nil {
			item.Submenu.Title = *args.Title
		}
	}
	if args.Enabled != nil {
		item.Enabled = *args.Enabled
	}
	b.changed()
	return true
}

// SetMenuItemEnabled toggles the enabled flag, leaving the title untouched.
func (b *Bridge) SetMenuItemEnabled(itemID string, enabled bool) bool {
	return b.UpdateMenuItem(protocol.UpdateMenuItemArgs{
		ItemID:  itemID,
		Enabled: &enabled,
	})
}

// HandleRequest decodes a raw request into the matching mutation. Boolean
// results report locate failures; errors are reserved for malformed
// requests (protocol.ErrInvalidArgs) and unknown methods.
func (b *Bridge) HandleRequest(method string, rawArgs json.RawMessage) (bool, error) {
	switch method {
	case protocol.MethodAddMenuItem:
		var args protocol.AddMenuItemArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return false, err
		}
		if args.MenuID == "" {
			return false, fmt.Errorf("%w: missing menuId", protocol.ErrInvalidArgs)
		}
		if args.ItemID == "" {
			return false, fmt.Errorf("%w: missing itemId", protocol.ErrInvalidArgs)
		}
		if args.Title == "" {
			return false, fmt.Errorf("%w: missing title", protocol.ErrInvalidArgs)
		}
		return b.AddMenuItem(args), nil

	case protocol.MethodAddSubmenu:
		var args protocol.AddSubmenuArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return false, err
		}
		if args.ParentMenuID == "" {
			return false, fmt.Errorf("%w: missing parentMenuId", protocol.ErrInvalidArgs)
		}
		if args.SubmenuID == "" {
			return false, fmt.Errorf("%w: missing submenuId", protocol.ErrInvalidArgs)
		}
		if args.Title == "" {
			return false, fmt.Errorf("%w: missing title", protocol.ErrInvalidArgs)
		}
		return b.AddSubmenu(args), nil

	case protocol.MethodRemoveMenuItem:
		var args protocol.RemoveMenuItemArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return false, err
		}
		if args.ItemID == "" {
			return false, fmt.Errorf("%w: missing itemId", protocol.ErrInvalidArgs)
		}
		return b.RemoveMenuItem(args.ItemID), nil

	case protocol.MethodUpdateMenuItem:
		var args protocol.UpdateMenuItemArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return false, err
		}
		if args.ItemID == "" {
			return false, fmt.Errorf("%w: missing itemId", protocol.ErrInvalidArgs)
		}
		return b.UpdateMenuItem(args), nil

	case protocol.MethodSetMenuItemEnabled:
		var args protocol.SetMenuItemEnabledArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return false, err
		}
		if args.ItemID == "" {
			return false, fmt.Errorf("%w: missing itemId", protocol.ErrInvalidArgs)
		}
		if args.Enabled == nil {
			return false, fmt.Errorf("%w: missing enabled", protocol.ErrInvalidArgs)
		}
		return b.SetMenuItemEnabled(args.ItemID, *args.Enabled), nil

	default:
		return false, fmt.Errorf("unknown method: %s", method)
	}
}

func (b *Bridge) itemSelected(itemID string) {
	if b.notifier == nil {
		return
	}
	b.notifier.Emit(protocol.NotifyItemSelected, protocol.ItemSelectedPayload{ItemID: itemID})
}

func decodeArgs(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing arguments", protocol.ErrInvalidArgs)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", protocol.ErrInvalidArgs, err)
	}
	return nil
}

func indexOrAppend(index *int) int {
	if index == nil {
		return -1
	}
	return *index
}
