package service

import (
	"encoding/json"
	"net"
	"sync"

	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/protocol"
)

// connection wraps one host connection with serialized frame writes and the
// table of notifications awaiting a reply.
type connection struct {
	dec *json.Decoder

	wmu sync.Mutex
	enc *json.Encoder

	mu      sync.Mutex
	pending map[string]chan bool
	failed  bool
}

func newConnection(conn net.Conn) *connection {
	return &connection{
		dec:     json.NewDecoder(conn),
		enc:     json.NewEncoder(conn),
		pending: make(map[string]chan bool),
	}
}

func (c *connection) send(f *protocol.Frame) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	logging.LogOutboundFrame(f)
	return c.enc.Encode(f)
}

// await registers a reply slot for the given notification ID. The returned
// channel yields the host's verdict, or closes without a value when the
// connection dies.
func (c *connection) await(id string) <-chan bool {
	ch := make(chan bool, 1)
	c.mu.Lock()
	if c.failed {
		close(ch)
	} else {
		c.pending[id] = ch
	}
	c.mu.Unlock()
	return ch
}

func (c *connection) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *connection) deliver(id string, handled bool) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	if ok {
		ch <- handled
	}
}

// fail releases every pending reply slot so suspended actions fall back to
// their original behavior instead of hanging on a dead host.
func (c *connection) fail() {
	c.mu.Lock()
	c.failed = true
	for id, ch := range c.pending {
		delete(c.pending, id)
		close(ch)
	}
	c.mu.Unlock()
}
