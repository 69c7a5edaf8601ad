package menutree

// FindMenu resolves a menu by identifier. The reserved RootID returns the
// root itself; otherwise the tree is walked depth-first, parent before
// children, siblings in display order. A branch item matches when its
// submenu's title or its represented object equals id. First match wins.
func FindMenu(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if id == RootID {
		return root
	}
	return findMenu(root, id)
}

func findMenu(n *Node, id string) *Node {
	for _, it := range n.Items {
		if it.Submenu == nil {
			continue
		}
		if it.Submenu.Title == id || it.Represented == id {
			return it.Submenu
		}
		if found := findMenu(it.Submenu, id); found != nil {
			return found
		}
	}
	return nil
}

// FindItemByID resolves an item by its represented object, depth-first from
// root. Each item is tested before its submenu is entered.
func FindItemByID(root *Node, id string) *Item {
	if root == nil || id == "" {
		return nil
	}
	for _, it := range root.Items {
		if it.Represented == id {
			return it
		}
		if it.Submenu != nil {
			if found := FindItemByID(it.Submenu, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindItemByAction resolves an item by its bound action reference. The
// search covers exactly two levels: the root's immediate children and the
// direct items of their submenus, since standard edit actions live at that
// depth by convention. It never recurses deeper.
func FindItemByAction(root *Node, action string) *Item {
	if root == nil || action == "" {
		return nil
	}
	for _, top := range root.Items {
		if top.Action.Action == action {
			return top
		}
		if top.Submenu == nil {
			continue
		}
		for _, it := range top.Submenu.Items {
			if it.Action.Action == action {
				return it
			}
		}
	}
	return nil
}
