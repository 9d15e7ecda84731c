package core

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Directory maps room identifiers to active rooms.
type Directory struct {
	rooms map[RoomID]*Room
}

// NewDirectory returns an empty room directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[RoomID]*Room)}
}

// Create opens a room hosted by host. The room takes the host's identifier.
func (d *Directory) Create(host ClientID) (*Room, error) {
	id := RoomID(host)
	if _, exists := d.rooms[id]; exists {
		return nil, invalidState("room %s already exists", id)
	}
	room := NewRoom(id, host)
	d.rooms[id] = room
	return room, nil
}

// Get returns the active room with the given id.
func (d *Directory) Get(id RoomID) (*Room, bool) {
	room, ok := d.rooms[id]
	return room, ok
}

// Delete removes a room. Unknown ids are ignored.
func (d *Directory) Delete(id RoomID) {
	delete(d.rooms, id)
}

// Len returns the number of active rooms.
func (d *Directory) Len() int {
	return len(d.rooms)
}

// List returns all active rooms ordered by id.
func (d *Directory) List() []*Room {
	rooms := lo.Values(d.rooms)
	slices.SortFunc(rooms, func(a, b *Room) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return rooms
}
