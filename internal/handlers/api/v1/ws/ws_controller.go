package ws

import (
	"net/http"
	"strconv"
	"time"

	"pdfhub/internal/contextutils"
	"pdfhub/internal/events"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WSController streams document activity events over websockets.
type WSController struct {
	files           services.FileService
	bus             *events.Bus
	responseBuilder *response.Builder
	upgrader        websocket.Upgrader
	logger          *zap.Logger
}

// NewWSController creates a new websocket controller.
func NewWSController(
	files services.FileService,
	bus *events.Bus,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) *WSController {
	return &WSController{
		files:           files,
		bus:             bus,
		responseBuilder: responseBuilder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Subscribe handles GET /ws/files/{id}. The document must be visible to the
// caller before the connection is upgraded.
func (c *WSController) Subscribe(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	fileID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fileID <= 0 {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid document ID", err))
		return
	}

	if _, err := c.files.Get(r.Context(), fileID, contextutils.GetUserID(r.Context())); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	eventCh, cancel := c.bus.Subscribe(fileID)

	go c.readPump(conn, cancel)
	c.writePump(conn, eventCh, fileID)
}

// readPump drains the connection so close frames and pongs are processed.
func (c *WSController) readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()
	defer conn.Close()

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

// writePump forwards bus events to the connection and keeps it alive with
// periodic pings.
func (c *WSController) writePump(conn *websocket.Conn, eventCh <-chan events.Event, fileID int64) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case event, ok := <-eventCh:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				c.logger.Debug("Websocket write failed",
					zap.Int64("file_id", fileID),
					zap.Error(err),
				)
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
