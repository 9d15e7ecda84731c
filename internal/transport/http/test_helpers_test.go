package http

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	staticDir := t.TempDir()
	for name, body := range map[string]string{
		"index.html": "<html>relay</html>",
		"styles.css": "body{}",
		"script.js":  "console.log('relay')",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(staticDir, name), []byte(body), 0o600))
	}
	return startServerWithAssets(t, staticDir)
}

// startServerWithAssets runs a hub and server serving the bundle in staticDir.
func startServerWithAssets(t *testing.T, staticDir string) *httptest.Server {
	t.Helper()

	disabledLogger := zerolog.New(nil)
	hub := core.NewHub(&disabledLogger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.StaticDir = staticDir

	server := NewServer(hub, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

type wsClient struct {
	t    *testing.T
	ctx  context.Context
	conn *websocket.Conn
	id   string
}

// dial opens a connection and consumes the connection frame.
func dial(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })

	c := &wsClient{t: t, ctx: ctx, conn: conn}
	frame := c.read()
	require.Equal(t, proto.OutboundTypeConnection, frame.Type)
	require.NotEmpty(t, frame.ID)
	c.id = frame.ID
	return c
}

// dialNamed dials and records a display name.
func dialNamed(t *testing.T, ts *httptest.Server, name string) *wsClient {
	t.Helper()

	c := dial(t, ts)
	c.send(proto.Inbound{Type: proto.InboundTypeNameRecord, Username: name})
	frame := c.read()
	require.Equal(t, proto.OutboundTypeNameRecord, frame.Type)
	require.True(t, frame.Success)
	return c
}

func (c *wsClient) send(v any) {
	c.t.Helper()
	require.NoError(c.t, wsjson.Write(c.ctx, c.conn, v))
}

func (c *wsClient) read() proto.Frame {
	c.t.Helper()

	var frame proto.Frame
	require.NoError(c.t, wsjson.Read(c.ctx, c.conn, &frame))
	return frame
}

// expect reads the next frame and checks its type.
func (c *wsClient) expect(frameType string) proto.Frame {
	c.t.Helper()

	frame := c.read()
	require.Equal(c.t, frameType, frame.Type, "frame: %+v", frame)
	return frame
}

// quiet asserts no frame arrives within a short window.
func (c *wsClient) quiet() {
	c.t.Helper()

	ctx, cancel := context.WithTimeout(c.ctx, 150*time.Millisecond)
	defer cancel()

	var frame proto.Frame
	err := wsjson.Read(ctx, c.conn, &frame)
	require.Error(c.t, err, "unexpected frame: %+v", frame)
}
