//go:build cgo || windows
// +build cgo windows

// Package tray mirrors the authoritative menu tree into the system tray.
// The tree stays owned by the bridge loop; the mirror only renders
// snapshots and feeds clicks back through the loop.
package tray

import (
	"context"
	"sync"

	"github.com/getlantern/systray"

	"github.com/example/menubridge/internal/bridge"
	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/menutree"
)

// Mirror renders the bridge's menu tree as a live tray menu.
type Mirror struct {
	loop    *bridge.Loop
	br      *bridge.Bridge
	changes chan struct{}

	mu      sync.Mutex
	entries []entry
}

type entry struct {
	item   *systray.MenuItem
	cancel context.CancelFunc
}

// renderItem is an owner-loop snapshot of one menu entry. The click closure
// re-enters the loop, so invoking it off the loop goroutine is safe.
type renderItem struct {
	title    string
	enabled  bool
	click    func()
	children []renderItem
}

// NewMirror constructs a Mirror and hooks it into the bridge's change
// notifications.
func NewMirror(loop *bridge.Loop, br *bridge.Bridge) *Mirror {
	m := &Mirror{
		loop:    loop,
		br:      br,
		changes: make(chan struct{}, 1),
	}
	br.SetOnChange(m.requestRefresh)
	return m
}

func (m *Mirror) requestRefresh() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// Run drives the systray lifecycle until the context is canceled.
func (m *Mirror) Run(ctx context.Context) error {
	done := make(chan struct{})

	go systray.Run(func() {
		systray.SetTooltip("MenuBridge")

		quit := systray.AddMenuItem("Quit MenuBridge", "Exit the bridge")
		go func() {
			select {
			case <-ctx.Done():
				systray.Quit()
			case <-quit.ClickedCh:
				systray.Quit()
			}
		}()

		go m.listen(ctx)
	}, func() {
		m.shutdown()
		close(done)
	})

	select {
	case <-ctx.Done():
		systray.Quit()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (m *Mirror) listen(ctx context.Context) {
	m.render(ctx)
	for {
		select {
		case <-ctx.Done():
			systray.Quit()
			return
		case <-m.changes:
			m.render(ctx)
		}
	}
}

func (m *Mirror) render(ctx context.Context) {
	var snapshot []renderItem
	if err := m.loop.Do(func() {
		snapshot = m.snapshot(m.br.Root())
	}); err != nil {
		logging.Debugf("tray: snapshot unavailable: %v", err)
		return
	}

	m.mu.Lock()
	old := m.entries
	m.entries = nil
	m.mu.Unlock()

	for _, e := range old {
		e.cancel()
		if e.item != nil {
			e.item.Hide()
		}
	}

	fresh := m.renderGroup(ctx, snapshot, nil)

	m.mu.Lock()
	m.entries = fresh
	m.mu.Unlock()
}

// snapshot runs on the owner loop and copies the renderable state out of
// the tree. Click closures capture item pointers but defer all access to a
// later loop entry.
func (m *Mirror) snapshot(n *menutree.Node) []renderItem {
	out := make([]renderItem, 0, len(n.Items))
	for _, it := range n.Items {
		item := it
		ri := renderItem{
			title:   item.Title,
			enabled: item.Enabled,
		}
		if item.Submenu != nil {
			ri.children = m.snapshot(item.Submenu)
		} else {
			ri.click = func() {
				_ = m.loop.Do(item.Dispatch)
			}
		}
		out = append(out, ri)
	}
	return out
}

func (m *Mirror) renderGroup(ctx context.Context, items []renderItem, parent *systray.MenuItem) []entry {
	entries := make([]entry, 0, len(items))
	for _, ri := range items {
		mi := makeMenuItem(parent, ri.title)
		if !ri.enabled {
			mi.Disable()
		}

		ctxItem, cancel := context.WithCancel(ctx)
		entries = append(entries, entry{item: mi, cancel: cancel})

		if ri.children != nil {
			entries = append(entries, m.renderGroup(ctx, ri.children, mi)...)
			go drainClicks(ctxItem, mi.ClickedCh)
			continue
		}

		go func(ch <-chan struct{}, click func()) {
			for {
				select {
				case <-ctxItem.Done():
					return
				case _, ok := <-ch:
					if !ok {
						return
					}
					go click()
				}
			}
		}(mi.ClickedCh, ri.click)
	}
	return entries
}

func makeMenuItem(parent *systray.MenuItem, title string) *systray.MenuItem {
	if parent == nil {
		return systray.AddMenuItem(title, title)
	}
	return parent.AddSubMenuItem(title, title)
}

func drainClicks(ctx context.Context, ch <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
		}
	}
}

func (m *Mirror) shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		e.cancel()
	}
	m.entries = nil
}
