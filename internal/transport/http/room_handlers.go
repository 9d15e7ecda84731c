package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/vovakirdan/roomrelay/internal/core"
)

// RoomHandlers provides read-only HTTP views of the hub state.
type RoomHandlers struct {
	hub Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	ID      string   `json:"id"`
	HostID  string   `json:"host_id"`
	Host    string   `json:"host"`
	Members []string `json:"members"`
}

// StatsResponse summarizes the hub state.
type StatsResponse struct {
	Clients int `json:"clients"`
	Named   int `json:"named"`
	Rooms   int `json:"rooms"`
}

// ListRooms handles listing active rooms.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	snap, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to snapshot hub")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
		return
	}

	response := lo.Map(snap.Rooms, func(room core.RoomView, _ int) RoomResponse {
		return RoomResponse{
			ID:      string(room.ID),
			HostID:  string(room.HostID),
			Host:    room.Host,
			Members: room.Members,
		}
	})

	h.log.Debug().Int("room_count", len(response)).Msg("rooms listed")
	c.JSON(http.StatusOK, response)
}

// Stats handles the hub summary.
// GET /api/stats
func (h *RoomHandlers) Stats(c *gin.Context) {
	snap, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to snapshot hub")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		Clients: snap.Clients,
		Named:   snap.Named,
		Rooms:   len(snap.Rooms),
	})
}
