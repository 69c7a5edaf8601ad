// Package service runs the bridge transport: it accepts host connections,
// authenticates them, feeds decoded requests to the menu owner loop, and
// carries notifications back to the host.
package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/menubridge/internal/bridge"
	"github.com/example/menubridge/internal/ipc"
	"github.com/example/menubridge/internal/logging"
	"github.com/example/menubridge/internal/protocol"
	"github.com/example/menubridge/internal/security"
)

const helloTimeout = 10 * time.Second

// Service brokers bridge traffic between host connections and the menu
// owner loop.
type Service struct {
	token    string
	endpoint ipc.Endpoint
	loop     *bridge.Loop

	mu   sync.Mutex
	br   *bridge.Bridge
	sink *connection
}

// New constructs a Service authenticating against the token derived from
// secret. The bridge is attached separately because it needs the service as
// its notifier.
func New(secret string, endpoint ipc.Endpoint, loop *bridge.Loop) (*Service, error) {
	token := security.ResolveToken(secret)
	if token == "" {
		return nil, fmt.Errorf("bridge token could not be resolved; set MENUBRIDGE_TOKEN or MENUBRIDGE_SECRET")
	}
	return &Service{token: token, endpoint: endpoint, loop: loop}, nil
}

// AttachBridge wires the request router. Must be called before Run.
func (s *Service) AttachBridge(br *bridge.Bridge) {
	s.mu.Lock()
	s.br = br
	s.mu.Unlock()
}

// Endpoint exposes the listening endpoint for logging and diagnostics.
func (s *Service) Endpoint() string {
	return s.endpoint.String()
}

// Run binds the configured endpoint and serves until the context is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	listener, err := s.endpoint.Listen()
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.endpoint.String(), err)
	}
	log.Printf("menubridge listening on %s", s.endpoint.String())
	return s.Serve(ctx, listener)
}

// Serve accepts host connections on listener until the context is canceled.
func (s *Service) Serve(ctx context.Context, listener net.Listener) error {
	defer listener.Close()

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Println("menubridge shutting down")
				return context.Canceled
			default:
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				log.Printf("temporary accept error: %v", err)
				time.Sleep(250 * time.Millisecond)
				continue
			}
			return fmt.Errorf("accept connection: %w", err)
		}

		go s.handleConnection(ctx, conn)
	}
}

func (s *Service) handleConnection(ctx context.Context, raw net.Conn) {
	defer raw.Close()

	c := newConnection(raw)
	defer c.fail()

	_ = raw.SetReadDeadline(time.Now().Add(helloTimeout))
	var hello protocol.Frame
	if err := c.dec.Decode(&hello); err != nil {
		log.Printf("service: failed to decode hello: %v", err)
		return
	}
	logging.LogInboundFrame(&hello)

	if hello.Kind != protocol.FrameHello || !s.authorize(hello.Token) {
		_ = c.send(&protocol.Frame{Kind: protocol.FrameResponse, Error: "unauthorized"})
		return
	}
	_ = raw.SetReadDeadline(time.Time{})

	// The newest host connection becomes the notification sink,
	// last-write-wins like the item registry. Register before acking so a
	// host that dispatches right after connecting is already wired up.
	s.mu.Lock()
	s.sink = c
	s.mu.Unlock()

	if err := c.send(&protocol.Frame{Kind: protocol.FrameHello}); err != nil {
		return
	}
	logging.Debugf("service: host connected from %s", raw.RemoteAddr())

	defer func() {
		s.mu.Lock()
		if s.sink == c {
			s.sink = nil
		}
		s.mu.Unlock()
	}()

	for {
		var f protocol.Frame
		if err := c.dec.Decode(&f); err != nil {
			logging.Debugf("service: host connection closed: %v", err)
			return
		}
		logging.LogInboundFrame(&f)

		switch f.Kind {
		case protocol.FrameRequest:
			s.dispatchRequest(c, f)
		case protocol.FrameReply:
			handled := f.Handled != nil && *f.Handled
			c.deliver(f.ID, handled)
		default:
			log.Printf("service: ignoring frame kind %q", f.Kind)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// dispatchRequest hands the request to the owner loop without blocking the
// reader. Blocking here would deadlock: a suspended standard action waits
// for a reply frame that only this reader can deliver. Responses are
// written from the loop goroutine, so completion order matches dispatch
// order.
func (s *Service) dispatchRequest(c *connection, f protocol.Frame) {
	s.mu.Lock()
	br := s.br
	s.mu.Unlock()

	resp := protocol.Frame{Kind: protocol.FrameResponse, ID: f.ID}
	if br == nil {
		resp.Error = "bridge unavailable"
		_ = c.send(&resp)
		return
	}

	err := s.loop.Submit(func() {
		result, err := br.HandleRequest(f.Method, f.Args)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Result = &result
		}
		_ = c.send(&resp)
	})
	if err != nil {
		resp.Error = err.Error()
		_ = c.send(&resp)
	}
}

// AskHandled sends a standard-action notification to the current host and
// blocks until the reply arrives. No host, a send failure, or a dropped
// connection all count as "not handled"; there is deliberately no timeout.
func (s *Service) AskHandled(name string) bool {
	s.mu.Lock()
	c := s.sink
	s.mu.Unlock()
	if c == nil {
		logging.Debugf("service: no host attached for %s", name)
		return false
	}

	id := uuid.NewString()
	ch := c.await(id)
	if err := c.send(&protocol.Frame{Kind: protocol.FrameNotify, ID: id, Name: name}); err != nil {
		c.forget(id)
		return false
	}
	handled, ok := <-ch
	return ok && handled
}

// Emit sends a fire-and-forget notification to the current host.
func (s *Service) Emit(name string, payload interface{}) {
	s.mu.Lock()
	c := s.sink
	s.mu.Unlock()
	if c == nil {
		logging.Debugf("service: no host attached for %s", name)
		return
	}

	f := protocol.Frame{Kind: protocol.FrameNotify, Name: name}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("service: marshal %s payload: %v", name, err)
			return
		}
		f.Payload = raw
	}
	if err := c.send(&f); err != nil {
		logging.Debugf("service: emit %s failed: %v", name, err)
	}
}

func (s *Service) authorize(token string) bool {
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}
