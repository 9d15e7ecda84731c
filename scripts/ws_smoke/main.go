package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

// run drives two clients through create, join and one chat message.
func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	host, err := dial(ctx, *addr, "smoke-host")
	if err != nil {
		return err
	}
	defer host.Close(websocket.StatusNormalClosure, "bye")

	guest, err := dial(ctx, *addr, "smoke-guest")
	if err != nil {
		return err
	}
	defer guest.Close(websocket.StatusNormalClosure, "bye")

	if err := wsjson.Write(ctx, host, proto.Inbound{Type: proto.InboundTypeCreate}); err != nil {
		return fmt.Errorf("send create: %w", err)
	}
	created, err := await(ctx, host, proto.OutboundTypeCreate)
	if err != nil {
		return err
	}
	if !created.Success {
		return fmt.Errorf("create failed")
	}
	fmt.Printf("Created room %s\n", created.RoomID)

	if err := wsjson.Write(ctx, guest, proto.Inbound{Type: proto.InboundTypeJoin, RoomID: created.RoomID}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	joined, err := await(ctx, guest, proto.OutboundTypeJoin)
	if err != nil {
		return err
	}
	fmt.Printf("Joined: host=%s members=%v\n", joined.Hostname, joined.RoomMembers)

	if err := wsjson.Write(ctx, guest, proto.Inbound{Type: proto.InboundTypeChatMessage, Message: *text}); err != nil {
		return fmt.Errorf("send chat: %w", err)
	}
	msg, err := await(ctx, host, proto.OutboundTypeChatMessage)
	if err != nil {
		return err
	}
	fmt.Printf("Host received: sender=%s message=%q\n", msg.Sender, msg.Message)

	status, err := await(ctx, guest, proto.OutboundTypeMessageSent)
	if err != nil {
		return err
	}
	fmt.Printf("Guest status: success=%v\n", status.Success)
	return nil
}

func dial(ctx context.Context, addr, name string) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeNameRecord, Username: name}); err != nil {
		conn.CloseNow()
		return nil, fmt.Errorf("send name: %w", err)
	}
	if _, err := await(ctx, conn, proto.OutboundTypeNameRecord); err != nil {
		conn.CloseNow()
		return nil, err
	}
	return conn, nil
}

// await reads frames until one of the wanted type arrives.
func await(ctx context.Context, conn *websocket.Conn, frameType string) (proto.Frame, error) {
	for {
		var frame proto.Frame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return frame, fmt.Errorf("read %s: %w", frameType, err)
		}
		if frame.Type == frameType {
			return frame, nil
		}
	}
}
