// internal/handlers/stream.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/medialicense-backend/internal/broadcast"
	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The HTTP layer handles cross-origin policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler upgrades clients to websocket connections and relays
// live status-change events, filtered by the query parameters track_id,
// movie_id and status. Connections see only events published after they
// subscribe.
type StreamHandler struct {
	broadcaster *broadcast.Broadcaster
}

func NewStreamHandler(broadcaster *broadcast.Broadcaster) *StreamHandler {
	return &StreamHandler{
		broadcaster: broadcaster,
	}
}

// GET /licenses/events
func (h *StreamHandler) Events(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	sub := h.broadcaster.Subscribe(filter)

	go h.writePump(conn, sub)
	h.readPump(conn, sub)
}

func (h *StreamHandler) parseFilter(c *gin.Context) (broadcast.Filter, bool) {
	var filter broadcast.Filter

	if raw := c.Query("track_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid track_id parameter", nil)
			return filter, false
		}
		filter.TrackID = &id
	}

	if raw := c.Query("movie_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid movie_id parameter", nil)
			return filter, false
		}
		filter.MovieID = &id
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseLicensingStatus(raw)
		if !ok {
			utils.BadRequestResponse(c, "Invalid status parameter", gin.H{"allowed": models.AllStatuses})
			return filter, false
		}
		filter.Status = &status
	}

	return filter, true
}

// readPump drains client frames so pongs are processed and the
// subscription is released as soon as the peer goes away.
func (h *StreamHandler) readPump(conn *websocket.Conn, sub *broadcast.Subscription) {
	defer func() {
		sub.Close()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) writePump(conn *websocket.Conn, sub *broadcast.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Close()
		conn.Close()
	}()

	for {
		select {
		case event, open := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
