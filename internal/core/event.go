package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventConnection tells a freshly connected client its identifier.
	EventConnection EventKind = iota
	// EventNameRecorded answers a name registration.
	EventNameRecorded
	// EventRoomCreated answers a create request.
	EventRoomCreated
	// EventRoomJoined answers a join request.
	EventRoomJoined
	// EventMemberJoined notifies existing members about a new one.
	EventMemberJoined
	// EventChatMessage delivers a chat message from another member.
	EventChatMessage
	// EventMessageSent reports the outcome of the client's own chat message.
	EventMessageSent
	// EventMemberLeft notifies remaining members about a departure.
	EventMemberLeft
	// EventHostChanged notifies remaining members about a new host.
	EventHostChanged
)

func (k EventKind) String() string {
	switch k {
	case EventConnection:
		return "connection"
	case EventNameRecorded:
		return "name_recorded"
	case EventRoomCreated:
		return "room_created"
	case EventRoomJoined:
		return "room_joined"
	case EventMemberJoined:
		return "member_joined"
	case EventChatMessage:
		return "chat_message"
	case EventMessageSent:
		return "message_sent"
	case EventMemberLeft:
		return "member_left"
	case EventHostChanged:
		return "host_changed"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened in the system.
// Events may be shared between recipients and must not be mutated after sending.
type Event struct {
	Kind     EventKind
	Success  bool
	ClientID ClientID // EventConnection
	Room     RoomID
	Host     string   // host display name for create/join replies
	Members  []string // display names, most recent joiner first
	User     string   // subject of member/host notices, sender of chat messages
	Text     string
	Error    *CoreError // set on failed replies
}
