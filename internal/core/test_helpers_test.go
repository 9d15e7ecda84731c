package core

import (
	"context"
	"testing"
	"time"
)

func startHub(t *testing.T) *Hub {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	hub := NewHub(nil)
	go hub.Run(ctx)
	return hub
}

// connect registers a client and consumes its connection event.
func connect(t *testing.T, hub *Hub, id ClientID) *Client {
	t.Helper()

	c := NewClient(id, 32)
	hub.RegisterClient(c)
	ev := nextEvent(t, c.Events)
	if ev.Kind != EventConnection || ev.ClientID != id {
		t.Fatalf("expected connection event for %s, got %+v", id, ev)
	}
	return c
}

// connectNamed connects a client and records its display name.
func connectNamed(t *testing.T, hub *Hub, id ClientID, name string) *Client {
	t.Helper()

	c := connect(t, hub, id)
	c.Commands <- &Command{Kind: CommandRecordName, Name: name}
	ev := nextEvent(t, c.Events)
	if ev.Kind != EventNameRecorded || !ev.Success {
		t.Fatalf("expected successful name record for %s, got %+v", name, ev)
	}
	return c
}

func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no event received")
		return nil
	}
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func noEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

// snapshotOf reads hub state. Callers wait for the reply events of their
// commands first, since commands reach the loop through per-client forwarders.
func snapshotOf(t *testing.T, hub *Hub) Snapshot {
	t.Helper()

	snap, err := hub.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return snap
}
