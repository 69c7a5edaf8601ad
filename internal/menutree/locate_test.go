package menutree

import "testing"

func testBar() *Node {
	tools := &Node{
		Title: "Tools",
		Items: []*Item{
			{Title: "Refresh", Enabled: true, Represented: "refresh"},
			{Title: "Advanced", Enabled: true, Represented: "advanced", Submenu: &Node{
				Title: "Advanced",
				Items: []*Item{
					{Title: "Deep", Enabled: true, Represented: "deep"},
				},
			}},
		},
	}
	return &Node{
		Title: RootID,
		Items: []*Item{
			{Title: "Edit", Enabled: true, Submenu: &Node{
				Title: "Edit",
				Items: []*Item{
					{Title: "Copy", Enabled: true, Action: ActionRef{Action: ActionCopy}},
				},
			}},
			{Title: "Tools", Enabled: true, Represented: "tools", Submenu: tools},
		},
	}
}

func TestFindMenu(t *testing.T) {
	root := testBar()

	tests := []struct {
		name      string
		id        string
		wantTitle string
		wantNil   bool
	}{
		{name: "root alias", id: "main", wantTitle: RootID},
		{name: "by title", id: "Edit", wantTitle: "Edit"},
		{name: "by represented object", id: "tools", wantTitle: "Tools"},
		{name: "nested by represented object", id: "advanced", wantTitle: "Advanced"},
		{name: "missing", id: "nope", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := FindMenu(root, tt.id)
			if tt.wantNil {
				if menu != nil {
					t.Fatalf("expected no menu for %q, got %q", tt.id, menu.Title)
				}
				return
			}
			if menu == nil {
				t.Fatalf("expected menu for %q", tt.id)
			}
			if menu.Title != tt.wantTitle {
				t.Fatalf("expected menu %q, got %q", tt.wantTitle, menu.Title)
			}
		})
	}
}

func TestFindMenuIsIdempotent(t *testing.T) {
	root := testBar()

	first := FindMenu(root, "tools")
	second := FindMenu(root, "tools")
	if first == nil || first != second {
		t.Fatalf("expected identical menu references, got %p and %p", first, second)
	}
}

func TestFindItemByID(t *testing.T) {
	root := testBar()

	item := FindItemByID(root, "deep")
	if item == nil || item.Title != "Deep" {
		t.Fatalf("expected to resolve nested item, got %+v", item)
	}

	if got := FindItemByID(root, "missing"); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}
	if got := FindItemByID(root, ""); got != nil {
		t.Fatalf("expected nil for empty id, got %+v", got)
	}
}

func TestFindItemByIDIsIdempotent(t *testing.T) {
	root := testBar()

	first := FindItemByID(root, "refresh")
	second := FindItemByID(root, "refresh")
	if first == nil || first != second {
		t.Fatalf("expected identical item references, got %p and %p", first, second)
	}
}

func TestFindItemByActionTwoLevels(t *testing.T) {
	root := testBar()

	if item := FindItemByAction(root, ActionCopy); item == nil || item.Title != "Copy" {
		t.Fatalf("expected to find Copy at submenu depth, got %+v", item)
	}

	// An item buried below the second level must not be found even when its
	// action matches.
	deep := FindItemByID(root, "deep")
	deep.Action = ActionRef{Action: ActionPaste}
	if item := FindItemByAction(root, ActionPaste); item != nil {
		t.Fatalf("expected deep item to be out of reach, got %q", item.Title)
	}

	if item := FindItemByAction(root, "bogus:"); item != nil {
		t.Fatalf("expected nil for unknown action, got %q", item.Title)
	}
}
