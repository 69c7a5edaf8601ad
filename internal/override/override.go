// Package override rewires the standard edit menu items (Cut, Copy, Paste,
// Select All) so their invocations are offered to the host application
// before falling back to the platform's original behavior.
package override

import (
	"errors"
	"log"

	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/menutree"
	"github.com/example/menubridge/internal/protocol"
)

// ErrAlreadyInstalled is returned by Install when the overrides are in
// place. Installing twice would snapshot the override itself as the
// original action, so re-invocation is refused instead of corrupting state.
var ErrAlreadyInstalled = errors.New("menu overrides already installed")

// Notifier delivers a standard-action notification to the host and blocks
// until the host answers. Any outcome other than an explicit true (false,
// absent reply, transport failure) means "not handled".
type Notifier interface {
	AskHandled(name string) bool
}

// standardAction ties an original selector to the engine's own handler name
// and the notification the host sees.
type standardAction struct {
	selector string
	override string
	notify   string
}

var standardActions = []standardAction{
	{selector: menutree.ActionCut, override: "menubridge:cut", notify: protocol.NotifyCut},
	{selector: menutree.ActionCopy, override: "menubridge:copy", notify: protocol.NotifyCopy},
	{selector: menutree.ActionPaste, override: "menubridge:paste", notify: protocol.NotifyPaste},
	{selector: menutree.ActionSelectAll, override: "menubridge:selectAll", notify: protocol.NotifySelectAll},
}

// Engine owns the override installation and the original-action snapshots.
// It lives for the process lifetime; there is no uninstall.
type Engine struct {
	notifier  Notifier
	installed bool
	originals map[string]menutree.ActionRef
}

// New constructs an Engine that consults notifier on every intercepted
// action.
func New(notifier Notifier) *Engine {
	return &Engine{
		notifier:  notifier,
		originals: make(map[string]menutree.ActionRef),
	}
}

// Install locates each standard edit item within the top two menu levels,
// snapshots its current target/action pair, and rebinds it to the engine.
// Items absent from the menu bar are skipped silently; a standard layout may
// legitimately omit them. Install must run once, on the menu owner
// goroutine, before the bridge serves requests.
func (e *Engine) Install(root *menutree.Node) error {
	if e.installed {
		return ErrAlreadyInstalled
	}
	e.installed = true

	for _, sa := range standardActions {
		item := menutree.FindItemByAction(root, sa.selector)
		if item == nil {
			logging.Debugf("override: no menu item found for %s; skipping", sa.selector)
			continue
		}
		e.originals[sa.override] = item.Action
		item.Action = menutree.ActionRef{Target: e, Action: sa.override}
		logging.Debugf("override: installed handler for %s (%q)", sa.selector, item.Title)
	}
	return nil
}

// Installed reports whether Install has run.
func (e *Engine) Installed() bool {
	return e.installed
}

// Perform implements menutree.Target for the overridden items. It notifies
// the host and suspends until the reply arrives; when the host does not
// claim the action, the preserved original target/action pair is invoked
// exactly once with the original sender. Without a snapshot the fallback is
// a silent no-op.
func (e *Engine) Perform(action string, sender *menutree.Item) {
	sa, ok := lookupOverride(action)
	if !ok {
		log.Printf("override: ignoring unknown action %q", action)
		return
	}

	if e.notifier != nil && e.notifier.AskHandled(sa.notify) {
		logging.Debugf("override: host handled %s", sa.notify)
		return
	}

	orig, ok := e.originals[sa.override]
	if !ok || orig.Target == nil {
		logging.Debugf("override: no original action for %s; dropping", sa.notify)
		return
	}
	orig.Target.Perform(orig.Action, sender)
}

func lookupOverride(action string) (standardAction, bool) {
	for _, sa := range standardActions {
		if sa.override == action {
			return sa, true
		}
	}
	return standardAction{}, false
}
