package http

import (
	"fmt"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

// inboundToCommand maps a decoded frame to a hub command. Field presence is
// checked by the hub so that failures come back as success:false replies.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeNameRecord:
		return &core.Command{Kind: core.CommandRecordName, Name: inbound.Username}, nil
	case proto.InboundTypeCreate:
		return &core.Command{Kind: core.CommandCreateRoom}, nil
	case proto.InboundTypeJoin:
		return &core.Command{Kind: core.CommandJoinRoom, Room: core.RoomID(inbound.RoomID)}, nil
	case proto.InboundTypeChatMessage:
		return &core.Command{Kind: core.CommandSendMessage, Text: inbound.Message}, nil
	default:
		return nil, &proto.Error{
			Type: proto.OutboundTypeError,
			Code: core.ErrCodeUnknownType,
			Msg:  fmt.Sprintf("unknown message type %q", inbound.Type),
		}
	}
}

func outboundFromEvent(event *core.Event) any {
	switch event.Kind {
	case core.EventConnection:
		return proto.Connection{Type: proto.OutboundTypeConnection, ID: string(event.ClientID)}
	case core.EventNameRecorded:
		return proto.NameRecordResponse{Type: proto.OutboundTypeNameRecord, Success: event.Success}
	case core.EventRoomCreated:
		return roomResponse(proto.OutboundTypeCreate, event)
	case core.EventRoomJoined:
		return roomResponse(proto.OutboundTypeJoin, event)
	case core.EventMemberJoined:
		return proto.NewMemberJoin{Type: proto.OutboundTypeNewMember, Username: event.User}
	case core.EventChatMessage:
		return proto.ChatMessageResponse{Type: proto.OutboundTypeChatMessage, Message: event.Text, Sender: event.User}
	case core.EventMessageSent:
		return proto.MessageSentStatus{Type: proto.OutboundTypeMessageSent, Success: event.Success}
	case core.EventMemberLeft:
		return proto.MemberLeave{Type: proto.OutboundTypeMemberLeave, Username: event.User}
	case core.EventHostChanged:
		return proto.HostChange{Type: proto.OutboundTypeHostChange, NewHost: event.User}
	default:
		return proto.Error{Type: proto.OutboundTypeError, Code: core.ErrCodeInternal, Msg: "unknown event"}
	}
}

func roomResponse(frameType string, event *core.Event) proto.RoomResponse {
	if !event.Success {
		return proto.RoomResponse{Type: frameType}
	}
	return proto.RoomResponse{
		Type:        frameType,
		Success:     true,
		RoomID:      string(event.Room),
		Hostname:    event.Host,
		RoomMembers: event.Members,
	}
}
