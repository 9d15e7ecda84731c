package core

// Membership tracks which room each client currently occupies.
type Membership struct {
	rooms map[ClientID]RoomID
}

// NewMembership returns an empty membership tracker.
func NewMembership() *Membership {
	return &Membership{rooms: make(map[ClientID]RoomID)}
}

// Set records that id occupies room.
func (m *Membership) Set(id ClientID, room RoomID) {
	m.rooms[id] = room
}

// RoomOf returns the room id occupies, if any.
func (m *Membership) RoomOf(id ClientID) (RoomID, bool) {
	room, ok := m.rooms[id]
	return room, ok
}

// Clear forgets the room id occupies.
func (m *Membership) Clear(id ClientID) {
	delete(m.rooms, id)
}
