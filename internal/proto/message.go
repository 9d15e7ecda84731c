package proto

const (
	InboundTypeNameRecord  = "nameRecordRequest"
	InboundTypeCreate      = "createRequest"
	InboundTypeJoin        = "joinRequest"
	InboundTypeChatMessage = "chatMessageRequest"

	OutboundTypeConnection  = "connection"
	OutboundTypeNameRecord  = "nameRecordResponse"
	OutboundTypeCreate      = "createResponse"
	OutboundTypeJoin        = "joinResponse"
	OutboundTypeNewMember   = "newMemberJoin"
	OutboundTypeChatMessage = "chatMessageResponse"
	OutboundTypeMessageSent = "messageSentStatus"
	OutboundTypeMemberLeave = "memberLeave"
	OutboundTypeHostChange  = "hostChange"
	OutboundTypeError       = "error"
)

// Inbound is a frame coming from the client. Only the fields relevant to
// Type are read.
type Inbound struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	RoomID   string `json:"roomId,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Connection tells the client its assigned identifier.
type Connection struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NameRecordResponse answers nameRecordRequest.
type NameRecordResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
}

// RoomResponse answers createRequest and joinRequest. Room details are
// omitted when Success is false.
type RoomResponse struct {
	Type        string   `json:"type"`
	Success     bool     `json:"success"`
	RoomID      string   `json:"roomId,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	RoomMembers []string `json:"roomMembers,omitempty"`
}

// NewMemberJoin notifies members that someone joined.
type NewMemberJoin struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// ChatMessageResponse delivers a chat message from another member.
type ChatMessageResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// MessageSentStatus reports whether the sender's message was relayed.
type MessageSentStatus struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
}

// MemberLeave notifies members that someone left.
type MemberLeave struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// HostChange notifies members about the new host.
type HostChange struct {
	Type    string `json:"type"`
	NewHost string `json:"newHost"`
}

// Error describes a protocol-level error response.
type Error struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Frame decodes any outbound frame. Clients switch on Type.
type Frame struct {
	Type        string   `json:"type"`
	ID          string   `json:"id,omitempty"`
	Success     bool     `json:"success,omitempty"`
	RoomID      string   `json:"roomId,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	RoomMembers []string `json:"roomMembers,omitempty"`
	Username    string   `json:"username,omitempty"`
	Message     string   `json:"message,omitempty"`
	Sender      string   `json:"sender,omitempty"`
	NewHost     string   `json:"newHost,omitempty"`
	Code        string   `json:"code,omitempty"`
	Msg         string   `json:"msg,omitempty"`
}
