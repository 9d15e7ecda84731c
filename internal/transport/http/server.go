package http

import (
	"context"
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
)

// Hub is the part of core.Hub the transport depends on.
type Hub interface {
	RegisterClient(c *core.Client)
	UnregisterClient(c *core.Client)
	Snapshot(ctx context.Context) (core.Snapshot, error)
}

// ErrorResponse is the JSON body of failed API calls.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds an HTTP server with the asset, WebSocket and API routes.
// The WebSocket endpoint sits on the mux directly: gin's response writer
// refuses to hijack once the upgrade headers have been written.
func NewServer(hub Hub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", NewRouter(hub, cfg, logger))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the gin engine serving health, API and asset routes.
func NewRouter(hub Hub, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(logger))

	r.GET("/health", healthHandler)

	rooms := NewRoomHandlers(hub, logger)
	api := r.Group("/api")
	api.GET("/rooms", rooms.ListRooms)
	api.GET("/stats", rooms.Stats)

	registerAssets(r, cfg.StaticDir, logger)

	logger.Debug().Str("static_dir", cfg.StaticDir).Msg("router setup")
	return r
}

func healthHandler(c *gin.Context) {
	_, _ = fmt.Fprint(c.Writer, "ok")
}
