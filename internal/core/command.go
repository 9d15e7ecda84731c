package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandRecordName sets the client's display name.
	CommandRecordName CommandKind = iota
	// CommandCreateRoom creates a room hosted by the client.
	CommandCreateRoom
	// CommandJoinRoom adds the client to an existing room.
	CommandJoinRoom
	// CommandSendMessage delivers a chat message to the other room members.
	CommandSendMessage
)

func (k CommandKind) String() string {
	switch k {
	case CommandRecordName:
		return "record_name"
	case CommandCreateRoom:
		return "create_room"
	case CommandJoinRoom:
		return "join_room"
	case CommandSendMessage:
		return "send_message"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Name string
	Room RoomID
	Text string
}
