package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Hub coordinates clients, identities and rooms.
// All state is owned by the Run loop; other goroutines talk to it through channels.
type Hub struct {
	register  chan *Client
	inbox     chan inbound
	snapshots chan chan Snapshot
	done      chan struct{}

	conns   *Registry
	names   *IdentityStore
	rooms   *Directory
	members *Membership

	log *zerolog.Logger
}

// inbound is a command, or the departure when leave is set.
type inbound struct {
	client *Client
	cmd    *Command
	leave  bool
}

// RoomView is a read-only picture of a room.
type RoomView struct {
	ID      RoomID
	HostID  ClientID
	Host    string
	Members []string // join order
}

// Snapshot is a read-only picture of the hub state.
type Snapshot struct {
	Clients int
	Named   int
	Rooms   []RoomView
}

// NewHub creates a new hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		register:  make(chan *Client),
		inbox:     make(chan inbound, 64),
		snapshots: make(chan chan Snapshot),
		done:      make(chan struct{}),
		conns:     NewRegistry(),
		names:     NewIdentityStore(),
		rooms:     NewDirectory(),
		members:   NewMembership(),
		log:       logger,
	}
}

// RegisterClient announces a new connection. The client receives an
// EventConnection carrying its id.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient announces that the client's connection closed. Commands
// the client queued before are processed first. It returns once the
// departure has been handled or the hub has stopped. Calling it more than
// once is harmless.
func (h *Hub) UnregisterClient(c *Client) {
	c.leave()
	select {
	case <-c.done:
	case <-h.done:
	}
}

// Snapshot returns the current state as seen by the Run loop.
func (h *Hub) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case h.snapshots <- reply:
	case <-h.done:
		return Snapshot{}, errors.New("hub stopped")
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Run processes events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Int("clients", h.conns.Len()).Int("rooms", h.rooms.Len()).Msg("hub stopped")
			return
		case c := <-h.register:
			h.handleConnect(ctx, c)
		case in := <-h.inbox:
			if in.leave {
				h.handleDisconnect(in.client)
				in.client.detach()
				continue
			}
			h.dispatch(in)
		case reply := <-h.snapshots:
			reply <- h.snapshot()
		}
	}
}

// forward moves the client's commands into the Run loop, preserving their
// order. Once the client leaves, whatever it queued is drained ahead of the
// departure so a message sent right before a close still reaches the room.
func (h *Hub) forward(ctx context.Context, c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			if !h.enqueue(ctx, c, cmd) {
				return
			}
		case <-c.leaving:
			for drained := false; !drained; {
				select {
				case cmd := <-c.Commands:
					if !h.enqueue(ctx, c, cmd) {
						return
					}
				default:
					drained = true
				}
			}
			select {
			case h.inbox <- inbound{client: c, leave: true}:
			case <-ctx.Done():
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) enqueue(ctx context.Context, c *Client, cmd *Command) bool {
	if cmd == nil {
		return true
	}
	select {
	case h.inbox <- inbound{client: c, cmd: cmd}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) handleConnect(ctx context.Context, c *Client) {
	if c == nil {
		h.log.Warn().Msg("nil client registration skipped")
		return
	}
	h.conns.Register(c.ID, c)
	h.log.Info().Str("client_id", string(c.ID)).Int("clients", h.conns.Len()).Msg("client connected")

	h.send(c.ID, &Event{Kind: EventConnection, ClientID: c.ID})
	go h.forward(ctx, c)
}

func (h *Hub) handleDisconnect(c *Client) {
	if c == nil {
		return
	}
	if _, ok := h.conns.Lookup(c.ID); !ok {
		h.log.Debug().Str("client_id", string(c.ID)).Msg("disconnect for unknown client ignored")
		return
	}

	name, _ := h.names.Name(c.ID)
	h.names.Remove(c.ID)
	h.conns.Unregister(c.ID)
	h.log.Info().Str("client_id", string(c.ID)).Str("user", name).Int("clients", h.conns.Len()).Msg("client disconnected")

	if roomID, ok := h.members.RoomOf(c.ID); ok {
		h.leaveRoom(c.ID, name, roomID)
	}
}

func (h *Hub) dispatch(in inbound) {
	logger := h.log.With().Str("client_id", string(in.client.ID)).Str("command", in.cmd.Kind.String()).Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("command handler recovered")
		}
	}()

	if _, ok := h.conns.Lookup(in.client.ID); !ok {
		logger.Warn().Err(invalidState("client is not connected")).Msg("command dropped")
		return
	}

	logger.Debug().Msg("command received")
	id := in.client.ID
	switch in.cmd.Kind {
	case CommandRecordName:
		h.recordName(&logger, id, in.cmd.Name)
	case CommandCreateRoom:
		h.createRoom(&logger, id)
	case CommandJoinRoom:
		h.joinRoom(&logger, id, in.cmd.Room)
	case CommandSendMessage:
		h.sendMessage(&logger, id, in.cmd.Text)
	default:
		logger.Warn().Int("kind", int(in.cmd.Kind)).Msg("unknown command kind")
	}
}

func (h *Hub) recordName(logger *zerolog.Logger, id ClientID, name string) {
	if err := h.names.SetName(id, name); err != nil {
		logger.Warn().Err(err).Msg("name record rejected")
		h.send(id, failure(EventNameRecorded, err))
		return
	}
	logger.Info().Str("user", name).Msg("name recorded")
	h.send(id, &Event{Kind: EventNameRecorded, Success: true})
}

func (h *Hub) createRoom(logger *zerolog.Logger, id ClientID) {
	name, ok := h.names.Name(id)
	if !ok {
		h.reject(logger, id, EventRoomCreated, invalidState("name must be recorded before creating a room"))
		return
	}
	if current, in := h.members.RoomOf(id); in {
		h.reject(logger, id, EventRoomCreated, invalidState("already in room %s", current))
		return
	}

	room, err := h.rooms.Create(id)
	if err != nil {
		h.reject(logger, id, EventRoomCreated, err)
		return
	}
	h.members.Set(id, room.ID)

	logger.Info().Str("room_id", string(room.ID)).Str("user", name).Msg("room created")
	h.send(id, &Event{
		Kind:    EventRoomCreated,
		Success: true,
		Room:    room.ID,
		Host:    name,
		Members: h.memberNames(room),
	})
}

func (h *Hub) joinRoom(logger *zerolog.Logger, id ClientID, roomID RoomID) {
	if roomID == "" {
		h.reject(logger, id, EventRoomJoined, fmt.Errorf("%w: roomId is required", ErrValidation))
		return
	}
	room, ok := h.rooms.Get(roomID)
	if !ok {
		h.reject(logger, id, EventRoomJoined, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID))
		return
	}
	name, ok := h.names.Name(id)
	if !ok {
		h.reject(logger, id, EventRoomJoined, invalidState("name must be recorded before joining a room"))
		return
	}
	if current, in := h.members.RoomOf(id); in {
		h.reject(logger, id, EventRoomJoined, invalidState("already in room %s", current))
		return
	}

	room.Add(id)
	h.members.Set(id, room.ID)

	hostName, _ := h.names.Name(room.Host)
	logger.Info().Str("room_id", string(room.ID)).Str("user", name).Str("host", hostName).Int("members", room.Len()).Msg("room joined")

	h.send(id, &Event{
		Kind:    EventRoomJoined,
		Success: true,
		Room:    room.ID,
		Host:    hostName,
		Members: h.memberNames(room),
	})
	h.broadcast(room, id, &Event{Kind: EventMemberJoined, Room: room.ID, User: name})
}

func (h *Hub) sendMessage(logger *zerolog.Logger, id ClientID, text string) {
	if text == "" {
		h.reject(logger, id, EventMessageSent, fmt.Errorf("%w: message is required", ErrValidation))
		return
	}
	roomID, ok := h.members.RoomOf(id)
	if !ok {
		h.reject(logger, id, EventMessageSent, invalidState("client is not in a room"))
		return
	}
	room, ok := h.rooms.Get(roomID)
	if !ok {
		h.members.Clear(id)
		h.reject(logger, id, EventMessageSent, invalidState("room %s no longer exists", roomID))
		return
	}

	sender, _ := h.names.Name(id)
	delivered := h.broadcast(room, id, &Event{Kind: EventChatMessage, Room: room.ID, User: sender, Text: text})
	logger.Debug().Str("room_id", string(room.ID)).Int("delivered", delivered).Msg("chat message relayed")

	h.send(id, &Event{Kind: EventMessageSent, Success: true})
}

// leaveRoom removes a departed client from its room, then hands the room to
// the earliest remaining member if the host left, or closes it if nobody is left.
func (h *Hub) leaveRoom(id ClientID, name string, roomID RoomID) {
	logger := h.log.With().Str("client_id", string(id)).Str("room_id", string(roomID)).Logger()

	h.members.Clear(id)
	room, ok := h.rooms.Get(roomID)
	if !ok {
		logger.Warn().Err(invalidState("membership points to missing room")).Msg("departure cleanup")
		return
	}

	wasHost := room.Host == id
	room.Remove(id)
	if room.Empty() {
		h.rooms.Delete(room.ID)
		logger.Info().Int("rooms", h.rooms.Len()).Msg("room closed")
		return
	}

	h.broadcast(room, "", &Event{Kind: EventMemberLeft, Room: room.ID, User: name})
	logger.Info().Str("user", name).Int("members", room.Len()).Msg("member left")

	if !wasHost {
		return
	}
	newHost, _ := room.PromoteFirst()
	newHostName, _ := h.names.Name(newHost)
	h.broadcast(room, "", &Event{Kind: EventHostChanged, Room: room.ID, User: newHostName})
	logger.Info().Str("new_host", newHostName).Str("new_host_id", string(newHost)).Msg("host changed")
}

// memberNames lists display names with the most recent joiner first.
func (h *Hub) memberNames(room *Room) []string {
	members := room.Members()
	return lo.Map(members, func(_ ClientID, i int) string {
		name, _ := h.names.Name(members[len(members)-1-i])
		return name
	})
}

// broadcast sends ev to every member except skip and returns the number of
// successful deliveries. Failed deliveries are logged and skipped.
func (h *Hub) broadcast(room *Room, skip ClientID, ev *Event) int {
	delivered := 0
	for _, member := range room.Members() {
		if member == skip {
			continue
		}
		if h.send(member, ev) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) send(id ClientID, ev *Event) bool {
	c, ok := h.conns.Lookup(id)
	if !ok {
		h.log.Warn().Str("client_id", string(id)).Str("event", ev.Kind.String()).Msg("delivery to unknown client dropped")
		return false
	}
	if !c.trySend(ev) {
		h.log.Warn().Str("client_id", string(id)).Str("event", ev.Kind.String()).Msg("slow consumer, event dropped")
		return false
	}
	return true
}

func (h *Hub) reject(logger *zerolog.Logger, id ClientID, kind EventKind, err error) {
	if errors.Is(err, ErrInvalidState) {
		logger.Warn().Err(err).Msg("request in invalid state")
	} else {
		logger.Debug().Err(err).Msg("request rejected")
	}
	h.send(id, failure(kind, err))
}

func failure(kind EventKind, err error) *Event {
	return &Event{Kind: kind, Success: false, Error: AsCoreError(err)}
}

func (h *Hub) snapshot() Snapshot {
	rooms := lo.Map(h.rooms.List(), func(room *Room, _ int) RoomView {
		host, _ := h.names.Name(room.Host)
		return RoomView{
			ID:     room.ID,
			HostID: room.Host,
			Host:   host,
			Members: lo.Map(room.Members(), func(id ClientID, _ int) string {
				name, _ := h.names.Name(id)
				return name
			}),
		}
	})
	return Snapshot{
		Clients: h.conns.Len(),
		Named:   h.names.Len(),
		Rooms:   rooms,
	}
}
