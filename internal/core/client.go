package core

import (
	"sync"

	"github.com/google/uuid"
)

// ClientID identifies a single connection for its whole lifetime.
type ClientID string

// RoomID identifies a room. It equals the ClientID of the room's creator.
type RoomID string

// DefaultClientBuffer is used when NewClient is given a non-positive buffer size.
const DefaultClientBuffer = 16

// NewClientID returns a fresh identifier. Identifiers are never reused.
func NewClientID() ClientID {
	return ClientID(uuid.NewString())
}

// Client is a connected participant as seen by the core layer.
// Transport pushes Commands and drains Events.
type Client struct {
	ID       ClientID
	Commands chan *Command
	Events   chan *Event

	leaving   chan struct{}
	leaveOnce sync.Once
	done      chan struct{}
	doneOnce  sync.Once
}

// NewClient constructs a client with initialized channels.
func NewClient(id ClientID, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		leaving:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Done is closed once the hub has processed the client's departure.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// leave marks the end of the command stream. Commands queued before it are
// still processed.
func (c *Client) leave() {
	c.leaveOnce.Do(func() { close(c.leaving) })
}

func (c *Client) detach() {
	c.doneOnce.Do(func() { close(c.done) })
}

// trySend never blocks; a full buffer is reported as a failed delivery.
func (c *Client) trySend(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
