package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cabogame/cabo/internal/game"
	"github.com/cabogame/cabo/internal/middleware"
	"github.com/cabogame/cabo/internal/models"
)

// RoomWSHandler upgrades /rooms/ws/{room_id} to a WebSocket, resolves the
// guest identity, and pumps commands into the room until the socket closes.
func RoomWSHandler(logger *logrus.Logger, rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/rooms/ws/"), "/")
		if len(pathParts) < 1 || pathParts[0] == "" {
			http.Error(w, "missing room_id in path (/rooms/ws/{room_id})", http.StatusBadRequest)
			return
		}
		roomID, err := uuid.Parse(pathParts[0])
		if err != nil {
			http.Error(w, "invalid room_id format", http.StatusBadRequest)
			return
		}
		room, ok := rs.Store.Get(roomID)
		if !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		// Identity first: the session cookie has to land on the handshake
		// response, after Accept it is too late to set headers.
		playerID, err := EnsureGuest(w, r)
		if err != nil {
			logger.Warnf("guest identity failed for room %s: %v", roomID, err)
			http.Error(w, "identity error", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"cabo"},
			OriginPatterns: []string{"*"}, // tighten for production
		})
		if err != nil {
			logger.Warnf("websocket accept error for room %s: %v", roomID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")

		if c.Subprotocol() != "cabo" {
			c.Close(websocket.StatusPolicyViolation, "client must use the 'cabo' subprotocol")
			return
		}
		logger.WithFields(logrus.Fields{"room": roomID, "player": playerID}).Info("WebSocket connected")

		rs.attach(roomID, playerID, c)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		readErr := readCommands(ctx, c, room, playerID, logger)

		rs.detach(roomID, playerID)
		room.Disconnect(playerID)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, readErr)
		c.Close(websocket.StatusNormalClosure, "bye")
	}
}

// readCommands reads JSON commands off the socket and submits them to the
// room's command loop. Denials are already delivered to the sender by the
// engine; here they are only logged.
func readCommands(ctx context.Context, c *websocket.Conn, room *game.Room, playerID uuid.UUID, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			continue
		}

		var cmd models.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			logger.Warnf("invalid JSON from player %s in room %s: %v", playerID, room.ID, err)
			writeWithTimeout(c, []byte(`{"type":"private_denied","reason":"bad_json"}`))
			continue
		}

		if err := room.Submit(ctx, playerID, cmd); err != nil {
			if err == game.ErrRoomClosed || ctx.Err() != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"room":   room.ID,
				"player": playerID,
				"cmd":    cmd.Type,
			}).Debugf("command denied: %v", err)
		}
	}
}
