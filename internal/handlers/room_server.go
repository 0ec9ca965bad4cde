package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cabogame/cabo/internal/auth"
	"github.com/cabogame/cabo/internal/game"
	"github.com/cabogame/cabo/internal/journal"
)

// RoomServer owns the room registry and the connection fan-out. The engine
// stays transport-free: rooms emit events through the two functions installed
// here, and this layer maps player ids to live WebSocket connections.
type RoomServer struct {
	Store   *game.RoomStore
	logger  *logrus.Logger
	journal *journal.Publisher
	rules   game.HouseRules
	baseCtx context.Context

	mu    sync.Mutex
	conns map[uuid.UUID]map[uuid.UUID]*websocket.Conn // room id -> player id -> conn
}

// NewRoomServer wires a server whose rooms run until baseCtx is cancelled.
// jrnl may be nil.
func NewRoomServer(baseCtx context.Context, logger *logrus.Logger, jrnl *journal.Publisher, rules game.HouseRules) *RoomServer {
	return &RoomServer{
		Store:   game.NewRoomStore(),
		logger:  logger,
		journal: jrnl,
		rules:   rules,
		baseCtx: baseCtx,
		conns:   make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn),
	}
}

// CreateRoom builds a room, installs the event fan-out, and starts its
// command loop.
func (rs *RoomServer) CreateRoom() *game.Room {
	r := game.NewRoom(rs.rules, rs.logger, rs.journal)
	r.BroadcastFn = rs.broadcastFunc(r.ID)
	r.SendToPlayerFn = rs.sendToPlayerFunc(r.ID)
	rs.Store.Add(r)
	go r.Run(rs.baseCtx)
	rs.logger.WithField("room", r.ID).Info("room created")
	return r
}

// CreateRoomHandler serves POST /rooms/create and returns the new room id.
func CreateRoomHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		room := rs.CreateRoom()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"room_id": room.ID.String()})
	}
}

func (rs *RoomServer) attach(roomID, playerID uuid.UUID, c *websocket.Conn) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.conns[roomID] == nil {
		rs.conns[roomID] = make(map[uuid.UUID]*websocket.Conn)
	}
	rs.conns[roomID][playerID] = c
}

func (rs *RoomServer) detach(roomID, playerID uuid.UUID) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.conns[roomID], playerID)
	if len(rs.conns[roomID]) == 0 {
		delete(rs.conns, roomID)
	}
}

// broadcastFunc returns the room's broadcast sink. It snapshots the live
// connections under the lock, then marshals and writes asynchronously so the
// room's command loop never blocks on a slow client.
func (rs *RoomServer) broadcastFunc(roomID uuid.UUID) func(ev game.Event) {
	return func(ev game.Event) {
		rs.mu.Lock()
		targets := make([]*websocket.Conn, 0, len(rs.conns[roomID]))
		for _, c := range rs.conns[roomID] {
			targets = append(targets, c)
		}
		rs.mu.Unlock()

		data, err := json.Marshal(ev)
		if err != nil {
			rs.logger.Errorf("marshal broadcast event %s: %v", ev.Type, err)
			return
		}
		go func() {
			for _, c := range targets {
				writeWithTimeout(c, data)
			}
		}()
	}
}

// sendToPlayerFunc returns the room's targeted sink.
func (rs *RoomServer) sendToPlayerFunc(roomID uuid.UUID) func(playerID uuid.UUID, ev game.Event) {
	return func(playerID uuid.UUID, ev game.Event) {
		rs.mu.Lock()
		c := rs.conns[roomID][playerID]
		rs.mu.Unlock()
		if c == nil {
			return
		}
		data, err := json.Marshal(ev)
		if err != nil {
			rs.logger.Errorf("marshal private event %s: %v", ev.Type, err)
			return
		}
		go writeWithTimeout(c, data)
	}
}

func writeWithTimeout(c *websocket.Conn, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = c.Write(ctx, websocket.MessageText, data)
}

// EnsureGuest resolves the caller's guest identity from the session cookie,
// minting a fresh identity and cookie when none is present or it fails
// verification. Must run before the WebSocket upgrade so the Set-Cookie
// header can ride the handshake response.
func EnsureGuest(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if token := extractCookieToken(r.Header.Get("Cookie"), "session"); token != "" {
		if sub, err := auth.VerifySessionToken(token); err == nil {
			if id, err := uuid.Parse(sub); err == nil {
				return id, nil
			}
		}
	}
	id := uuid.New()
	token, err := auth.CreateSessionToken(id.String())
	if err != nil {
		return uuid.Nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// extractCookieToken pulls a named cookie value out of a raw Cookie header.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
