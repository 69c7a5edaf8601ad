// Package menutree models the application menu bar as a tree of menus and
// menu items. The tree is the authoritative menu state for the bridge; the
// native rendering layer mirrors it but never owns it.
package menutree

// RootID is the reserved identifier for the menu bar itself.
const RootID = "main"

// Target receives action dispatches for menu items.
type Target interface {
	Perform(action string, sender *Item)
}

// ActionRef is a target/action pair bound to a menu item. A zero ActionRef
// means the item dispatches nothing.
type ActionRef struct {
	Target Target
	Action string
}

// Node is a menu: a titled, ordered sequence of items.
type Node struct {
	Title string
	Items []*Item
}

// Item is a single menu entry. An item with a non-nil Submenu is a branch
// that owns exactly one Node. Represented carries the caller-supplied custom
// ID for items created through the bridge; items owned by the system leave
// it empty.
type Item struct {
	Title       string
	Enabled     bool
	Key         string
	Modifiers   Modifier
	Action      ActionRef
	Represented string
	Submenu     *Node
}

// Insert places item at index when the index lies within [0, len(Items)];
// any other value, including negative ones, appends.
func (n *Node) Insert(item *Item, index int) {
	if index < 0 || index > len(n.Items) {
		n.Items = append(n.Items, item)
		return
	}
	n.Items = append(n.Items, nil)
	copy(n.Items[index+1:], n.Items[index:])
	n.Items[index] = item
}

// Detach removes the first occurrence of item anywhere in the tree rooted at
// n and reports whether it was found. Identity is pointer equality.
func (n *Node) Detach(item *Item) bool {
	for i, it := range n.Items {
		if it == item {
			n.Items = append(n.Items[:i], n.Items[i+1:]...)
			return true
		}
		if it.Submenu != nil && it.Submenu.Detach(item) {
			return true
		}
	}
	return false
}

// Dispatch invokes the item's bound action, passing the item itself as the
// sender. Disabled items and items without a bound target do not dispatch.
func (it *Item) Dispatch() {
	if !it.Enabled || it.Action.Target == nil {
		return
	}
	it.Action.Target.Perform(it.Action.Action, it)
}
