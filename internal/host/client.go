// Package host is the application-facing side of the bridge: a client that
// issues menu mutations and receives menu notifications. Transport failures
// never propagate out of the convenience API; they are logged and reported
// as a false result, so a missing native side degrades to no-ops.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/menubridge/internal/ipc"
	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/protocol"
	"github.com/example/menubridge/internal/security"
)

const dialAckTimeout = 10 * time.Second

// ErrClosed is returned by calls made after the client shut down.
var ErrClosed = errors.New("bridge client closed")

// ActionHandler answers whether the host handled an intercepted standard
// action. Returning false lets the original menu behavior run.
type ActionHandler func() bool

// SelectedHandler receives the custom ID of a selected dynamic item.
type SelectedHandler func(itemID string)

// Client is a connected bridge host.
type Client struct {
	conn net.Conn
	dec  *json.Decoder

	wmu sync.Mutex
	enc *json.Encoder

	mu      sync.Mutex
	pending map[string]chan protocol.Frame
	closed  bool

	hmu      sync.Mutex
	actions  map[string]ActionHandler
	selected SelectedHandler
}

// Dial connects to the bridge at endpoint, authenticates with the token
// derived from secret, and starts the notification reader.
func Dial(ctx context.Context, endpoint ipc.Endpoint, secret string) (*Client, error) {
	conn, err := endpoint.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial bridge at %s: %w", endpoint.String(), err)
	}

	c := &Client{
		conn:    conn,
		dec:     json.NewDecoder(conn),
		enc:     json.NewEncoder(conn),
		pending: make(map[string]chan protocol.Frame),
		actions: make(map[string]ActionHandler),
	}

	if err := c.send(&protocol.Frame{Kind: protocol.FrameHello, Token: security.ResolveToken(secret)}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send hello: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(dialAckTimeout))
	var ack protocol.Frame
	if err := c.dec.Decode(&ack); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read hello ack: %w", err)
	}
	if ack.Error != "" {
		conn.Close()
		return nil, fmt.Errorf("bridge rejected connection: %s", ack.Error)
	}
	_ = conn.SetReadDeadline(time.Time{})

	go c.read()
	return c, nil
}

// Close shuts the connection down and releases pending calls.
func (c *Client) Close() error {
	c.fail()
	return c.conn.Close()
}

// OnCut registers the handler consulted when Cut is chosen from the menu.
func (c *Client) OnCut(fn ActionHandler) { c.setAction(protocol.NotifyCut, fn) }

// OnCopy registers the handler consulted when Copy is chosen from the menu.
func (c *Client) OnCopy(fn ActionHandler) { c.setAction(protocol.NotifyCopy, fn) }

// OnPaste registers the handler consulted when Paste is chosen from the menu.
func (c *Client) OnPaste(fn ActionHandler) { c.setAction(protocol.NotifyPaste, fn) }

// OnSelectAll registers the handler consulted when Select All is chosen
// from the menu.
func (c *Client) OnSelectAll(fn ActionHandler) { c.setAction(protocol.NotifySelectAll, fn) }

// OnMenuItemSelected registers the handler for dynamic item selections.
func (c *Client) OnMenuItemSelected(fn SelectedHandler) {
	c.hmu.Lock()
	c.selected = fn
	c.hmu.Unlock()
}

func (c *Client) setAction(name string, fn ActionHandler) {
	c.hmu.Lock()
	c.actions[name] = fn
	c.hmu.Unlock()
}

// AddMenuItem creates a menu item; see Call for error conversion.
func (c *Client) AddMenuItem(ctx context.Context, args protocol.AddMenuItemArgs) bool {
	return c.quiet(ctx, protocol.MethodAddMenuItem, args)
}

// AddSubmenu creates a submenu.
func (c *Client) AddSubmenu(ctx context.Context, args protocol.AddSubmenuArgs) bool {
	return c.quiet(ctx, protocol.MethodAddSubmenu, args)
}

// RemoveMenuItem removes the dynamic item with the given ID.
func (c *Client) RemoveMenuItem(ctx context.Context, itemID string) bool {
	return c.quiet(ctx, protocol.MethodRemoveMenuItem, protocol.RemoveMenuItemArgs{ItemID: itemID})
}

// UpdateMenuItem applies a sparse patch to the item with the given ID.
func (c *Client) UpdateMenuItem(ctx context.Context, args protocol.UpdateMenuItemArgs) bool {
	return c.quiet(ctx, protocol.MethodUpdateMenuItem, args)
}

// SetMenuItemEnabled toggles the enabled flag of the item with the given ID.
func (c *Client) SetMenuItemEnabled(ctx context.Context, itemID string, enabled bool) bool {
	return c.quiet(ctx, protocol.MethodSetMenuItemEnabled, protocol.SetMenuItemEnabledArgs{ItemID: itemID, Enabled: &enabled})
}

// quiet converts every failure into a false result, logging it for
// diagnostics. Mutations degrade silently when the bridge is unreachable.
func (c *Client) quiet(ctx context.Context, method string, args interface{}) bool {
	ok, err := c.Call(ctx, method, args)
	if err != nil {
		log.Printf("bridge: %s failed: %v", method, err)
		return false
	}
	return ok
}

// Call issues a request frame and waits for its response. Invalid-argument
// rejections come back wrapped in protocol.ErrInvalidArgs so callers can
// distinguish them from a plain "target not found" false.
func (c *Client) Call(ctx context.Context, method string, args interface{}) (bool, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return false, fmt.Errorf("marshal %s args: %w", method, err)
	}

	id := uuid.NewString()
	ch := make(chan protocol.Frame, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	if err := c.send(&protocol.Frame{Kind: protocol.FrameRequest, ID: id, Method: method, Args: raw}); err != nil {
		c.forget(id)
		return false, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		c.forget(id)
		return false, ctx.Err()
	case f, ok := <-ch:
		if !ok {
			return false, ErrClosed
		}
		if f.Error != "" {
			if rest, found := strings.CutPrefix(f.Error, protocol.ErrInvalidArgs.Error()); found {
				return false, fmt.Errorf("%w%s", protocol.ErrInvalidArgs, rest)
			}
			return false, errors.New(f.Error)
		}
		return f.Result != nil && *f.Result, nil
	}
}

func (c *Client) read() {
	defer c.fail()
	for {
		var f protocol.Frame
		if err := c.dec.Decode(&f); err != nil {
			logging.Debugf("host: bridge connection closed: %v", err)
			return
		}
		logging.LogInboundFrame(&f)

		switch f.Kind {
		case protocol.FrameResponse:
			c.mu.Lock()
			ch, ok := c.pending[f.ID]
			if ok {
				delete(c.pending, f.ID)
			}
			c.mu.Unlock()
			if ok {
				ch <- f
			}
		case protocol.FrameNotify:
			// Handlers run off the reader goroutine: a handler is free to
			// issue bridge calls, and those need this reader alive.
			go c.handleNotify(f)
		default:
			logging.Debugf("host: ignoring frame kind %q", f.Kind)
		}
	}
}

func (c *Client) handleNotify(f protocol.Frame) {
	if f.Name == protocol.NotifyItemSelected {
		var payload protocol.ItemSelectedPayload
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			log.Printf("host: bad %s payload: %v", f.Name, err)
			return
		}
		c.hmu.Lock()
		fn := c.selected
		c.hmu.Unlock()
		if fn != nil {
			fn(payload.ItemID)
		}
		return
	}

	c.hmu.Lock()
	fn := c.actions[f.Name]
	c.hmu.Unlock()

	handled := false
	if fn != nil {
		handled = fn()
	}
	if f.ID == "" {
		return
	}
	if err := c.send(&protocol.Frame{Kind: protocol.FrameReply, ID: f.ID, Handled: &handled}); err != nil {
		log.Printf("host: reply to %s failed: %v", f.Name, err)
	}
}

func (c *Client) send(f *protocol.Frame) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	logging.LogOutboundFrame(f)
	return c.enc.Encode(f)
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) fail() {
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		delete(c.pending, id)
		close(ch)
	}
	c.mu.Unlock()
}
