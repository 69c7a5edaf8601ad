// Package protocol defines the wire format spoken between the host
// application and the bridge: JSON frames carrying mutation requests,
// their boolean results, and menu notifications.
package protocol

import (
	"encoding/json"
	"errors"
)

// Frame kinds. A connection opens with a hello frame, after which the host
// sends request frames and the bridge answers with response frames; the
// bridge sends notify frames and the host may answer with reply frames.
const (
	FrameHello    = "hello"
	FrameRequest  = "request"
	FrameResponse = "response"
	FrameNotify   = "notify"
	FrameReply    = "reply"
)

// Methods accepted in request frames.
const (
	MethodAddMenuItem        = "addMenuItem"
	MethodAddSubmenu         = "addSubmenu"
	MethodRemoveMenuItem     = "removeMenuItem"
	MethodUpdateMenuItem     = "updateMenuItem"
	MethodSetMenuItemEnabled = "setMenuItemEnabled"
)

// Notification names emitted in notify frames. The four standard-action
// notifications await a reply frame; the selection notification does not.
const (
	NotifyCut          = "cut-from-menu"
	NotifyCopy         = "copy-from-menu"
	NotifyPaste        = "paste-from-menu"
	NotifySelectAll    = "select-all-from-menu"
	NotifyItemSelected = "menu-item-selected"
)

// ErrInvalidArgs marks a request whose shape is wrong (missing required
// field, malformed payload). It is the only failure surfaced as an error
// rather than a boolean false result.
var ErrInvalidArgs = errors.New("invalid arguments")

// Frame is the single on-wire envelope. Exactly one JSON object per frame.
type Frame struct {
	Kind    string          `json:"kind"`
	ID      string          `json:"id,omitempty"`
	Token   string          `json:"token,omitempty"`
	Method  string          `json:"method,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	Result  *bool           `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Name    string          `json:"name,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Handled *bool           `json:"handled,omitempty"`
}

// AddMenuItemArgs carries the addMenuItem request arguments.
type AddMenuItemArgs struct {
	MenuID        string   `json:"menuId"`
	ItemID        string   `json:"itemId"`
	Title         string   `json:"title"`
	Index         *int     `json:"index,omitempty"`
	KeyEquivalent string   `json:"keyEquivalent,omitempty"`
	KeyModifiers  []string `json:"keyModifiers,omitempty"`
	Enabled       *bool    `json:"enabled,omitempty"`
}

// AddSubmenuArgs carries the addSubmenu request arguments.
type AddSubmenuArgs struct {
	ParentMenuID string `json:"parentMenuId"`
	SubmenuID    string `json:"submenuId"`
	Title        string `json:"title"`
	Index        *int   `json:"index,omitempty"`
}

// RemoveMenuItemArgs carries the removeMenuItem request arguments.
type RemoveMenuItemArgs struct {
	ItemID string `json:"itemId"`
}

// UpdateMenuItemArgs carries the updateMenuItem request arguments. Absent
// fields leave the current value untouched.
type UpdateMenuItemArgs struct {
	ItemID  string  `json:"itemId"`
	Title   *string `json:"title,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// SetMenuItemEnabledArgs carries the setMenuItemEnabled request arguments.
type SetMenuItemEnabledArgs struct {
	ItemID  string `json:"itemId"`
	Enabled *bool  `json:"enabled"`
}

// ItemSelectedPayload is the payload of a menu-item-selected notification.
type ItemSelectedPayload struct {
	ItemID string `json:"itemId"`
}

// Bool returns a pointer suitable for the optional boolean frame fields.
func Bool(v bool) *bool {
	return &v
}
