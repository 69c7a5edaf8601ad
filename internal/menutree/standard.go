package menutree

// Action references for the standard edit items, named after the selectors
// the platform menu bar conventionally binds them to.
const (
	ActionCut       = "cut:"
	ActionCopy      = "copy:"
	ActionPaste     = "paste:"
	ActionSelectAll = "selectAll:"
)

// NewStandardBar builds a menu bar with the conventional Edit and View
// menus. The four standard edit items dispatch to defaults, which stands in
// for the platform's own responder chain.
func NewStandardBar(defaults Target) *Node {
	edit := &Node{
		Title: "Edit",
		Items: []*Item{
			{Title: "Cut", Enabled: true, Key: "x", Modifiers: ModCommand, Action: ActionRef{Target: defaults, Action: ActionCut}},
			{Title: "Copy", Enabled: true, Key: "c", Modifiers: ModCommand, Action: ActionRef{Target: defaults, Action: ActionCopy}},
			{Title: "Paste", Enabled: true, Key: "v", Modifiers: ModCommand, Action: ActionRef{Target: defaults, Action: ActionPaste}},
			{Title: "Select All", Enabled: true, Key: "a", Modifiers: ModCommand, Action: ActionRef{Target: defaults, Action: ActionSelectAll}},
		},
	}
	view := &Node{Title: "View"}

	return &Node{
		Title: RootID,
		Items: []*Item{
			{Title: "Edit", Enabled: true, Submenu: edit},
			{Title: "View", Enabled: true, Submenu: view},
		},
	}
}
