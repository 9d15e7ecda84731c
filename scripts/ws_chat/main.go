package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomrelay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "display name")
	room := flag.String("room", "", "room id to join; empty creates a new room")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v any) {
		if writeErr := wsjson.Write(ctx, conn, v); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	send(proto.Inbound{Type: proto.InboundTypeNameRecord, Username: *user})
	if *room == "" {
		send(proto.Inbound{Type: proto.InboundTypeCreate})
	} else {
		send(proto.Inbound{Type: proto.InboundTypeJoin, RoomID: *room})
	}

	fmt.Printf("Connected to %s as %s\n", *addr, *user)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var frame proto.Frame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch frame.Type {
		case proto.OutboundTypeConnection:
			fmt.Printf("* connection id %s\n", frame.ID)
		case proto.OutboundTypeNameRecord:
			if !frame.Success {
				fmt.Println("* name rejected")
			}
		case proto.OutboundTypeCreate, proto.OutboundTypeJoin:
			if !frame.Success {
				fmt.Println("* could not enter room")
				continue
			}
			fmt.Printf("* in room %s, host %s, members: %s\n", frame.RoomID, frame.Hostname, strings.Join(frame.RoomMembers, ", "))
		case proto.OutboundTypeNewMember:
			fmt.Printf("* %s joined\n", frame.Username)
		case proto.OutboundTypeChatMessage:
			fmt.Printf("%s: %s\n", frame.Sender, frame.Message)
		case proto.OutboundTypeMessageSent:
			if !frame.Success {
				fmt.Println("* message failed")
			}
		case proto.OutboundTypeMemberLeave:
			fmt.Printf("* %s left\n", frame.Username)
		case proto.OutboundTypeHostChange:
			fmt.Printf("* %s is now the host\n", frame.NewHost)
		case proto.OutboundTypeError:
			fmt.Printf("* error %s: %s\n", frame.Code, frame.Msg)
		default:
			fmt.Printf("frame=%+v\n", frame)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeChatMessage, Message: text}); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
