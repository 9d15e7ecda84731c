package core

import "slices"

// Room is a named group with one host and members kept in join order.
// While a room exists its host is always one of its members.
type Room struct {
	ID      RoomID
	Host    ClientID
	members []ClientID
}

// NewRoom constructs a room whose only member is its host.
func NewRoom(id RoomID, host ClientID) *Room {
	return &Room{
		ID:      id,
		Host:    host,
		members: []ClientID{host},
	}
}

// Add appends a member. Returns false if id is already a member.
func (r *Room) Add(id ClientID) bool {
	if r.Contains(id) {
		return false
	}
	r.members = append(r.members, id)
	return true
}

// Remove deletes a member, keeping the order of the rest. Returns true if removed.
func (r *Room) Remove(id ClientID) bool {
	idx := slices.Index(r.members, id)
	if idx < 0 {
		return false
	}
	r.members = slices.Delete(r.members, idx, idx+1)
	return true
}

// Contains reports whether id is a member.
func (r *Room) Contains(id ClientID) bool {
	return slices.Contains(r.members, id)
}

// Members returns a copy of the member list in join order.
func (r *Room) Members() []ClientID {
	return slices.Clone(r.members)
}

// Len returns the number of members.
func (r *Room) Len() int {
	return len(r.members)
}

// Empty returns true if no members remain.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}

// PromoteFirst makes the earliest remaining member the host.
func (r *Room) PromoteFirst() (ClientID, bool) {
	if len(r.members) == 0 {
		return "", false
	}
	r.Host = r.members[0]
	return r.Host, true
}
