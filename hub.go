/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Seednode/blackout/games"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
	maxNameLength  = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one WebSocket connection. Its id is the player id in every room
// it joins.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter

	// rooms the client receives broadcasts for; guarded by Hub.mu.
	rooms map[string]bool
}

// Hub is the transport for one game: it owns the game's rooms and fans room
// broadcasts out to the subscribed connections.
type Hub struct {
	cfg   *Config
	log   zerolog.Logger
	rooms *games.Registry

	mu      sync.RWMutex
	clients map[*Client]bool
	members map[string]map[*Client]bool
}

func newHub(cfg *Config, log zerolog.Logger, game games.Game) *Hub {
	h := &Hub{
		cfg:     cfg,
		log:     log.With().Str("game", string(game.Kind())).Logger(),
		clients: make(map[*Client]bool),
		members: make(map[string]map[*Client]bool),
	}

	h.rooms = games.NewRegistry(game, h,
		games.WithLogger(h.log),
		games.WithGrace(cfg.sessionTimeout),
		games.WithCodes(games.NewCodes(cfg.codeLength)),
		games.WithOnRemove(h.drop),
	)

	return h
}

// Broadcast is called by rooms with their lock held, so it only queues.
func (h *Hub) Broadcast(code, event string, payload any) {
	data, err := json.Marshal(ServerMessage{Type: event, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("GAMES: unable to encode broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.members[code] {
		h.deliverLocked(c, data)
	}
}

func (h *Hub) reply(c *Client, ref int, payload any) {
	data, err := json.Marshal(ServerMessage{Type: MsgAck, Ref: ref, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Msg("GAMES: unable to encode ack")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.clients[c] {
		h.deliverLocked(c, data)
	}
}

func (h *Hub) deliverLocked(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.log.Warn().Str("client", c.id).Msg("GAMES: send buffer full, dropping message")
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = true
}

func (h *Hub) subscribe(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.members[code] == nil {
		h.members[code] = make(map[*Client]bool)
	}
	h.members[code][c] = true
	c.rooms[code] = true
}

func (h *Hub) unsubscribeLocked(c *Client, code string) {
	delete(h.members[code], c)
	if len(h.members[code]) == 0 {
		delete(h.members, code)
	}
	delete(c.rooms, code)
}

func (h *Hub) unsubscribe(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unsubscribeLocked(c, code)
}

// drop forgets every subscription to a room the registry has removed.
func (h *Hub) drop(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.members[code] {
		delete(c.rooms, code)
	}
	delete(h.members, code)
}

// unregister drops the connection and then removes its player from every room,
// which may resolve phases that were waiting on it.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for code := range c.rooms {
		h.unsubscribeLocked(c, code)
	}
	close(c.send)
	h.mu.Unlock()

	if n := h.rooms.Leave(c.id); n > 0 {
		h.log.Debug().Str("client", c.id).Int("rooms", n).Msg("GAMES: player disconnected")
	}
}

func cleanName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || !utf8.ValidString(name) {
		return "", false
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name, true
}

func (h *Hub) dispatch(c *Client, msg ClientMessage) {
	switch msg.Type {
	case MsgCreateRoom:
		code, err := h.rooms.Create()
		if err != nil {
			h.log.Error().Err(err).Msg("GAMES: unable to create room")
			h.reply(c, msg.Ref, CreateAck{})
			return
		}
		h.subscribe(c, code)
		h.reply(c, msg.Ref, CreateAck{Success: true, RoomCode: code})

		return

	case MsgJoinRoom:
		room, ok := h.rooms.Get(msg.Code)
		name, valid := cleanName(msg.Name)
		if !ok || !valid {
			h.reply(c, msg.Ref, JoinAck{})
			return
		}

		h.subscribe(c, msg.Code)
		res := room.Join(c.id, name)
		if !res.Accepted {
			h.unsubscribe(c, msg.Code)
		}
		h.reply(c, msg.Ref, JoinAck{Success: res.Accepted, IsVIP: res.IsHost})

		return
	}

	room, ok := h.rooms.Get(msg.Code)
	if !ok {
		switch msg.Type {
		case MsgSubmitBid, MsgAttack, MsgTargetAction:
			h.reply(c, msg.Ref, SubmitAck{})
		}
		return
	}

	switch msg.Type {
	case MsgStartRound, MsgStartGame:
		room.Start(c.id)

	case MsgNextRound:
		room.Next(c.id)

	case MsgSubmitBid:
		h.reply(c, msg.Ref, SubmitAck{Success: room.Bid(c.id, msg.Amount)})

	case MsgAttack, MsgTargetAction:
		ok := room.Attack(c.id, games.Action{TargetID: msg.TargetID, ItemID: msg.ItemID})
		h.reply(c, msg.Ref, SubmitAck{Success: ok})

	case MsgAnswerQuestion:
		room.Answer(c.id, msg.TargetID)

	case MsgSubmitAnswer:
		if correct, ok := room.Select(c.id, msg.Selection); ok {
			h.reply(c, msg.Ref, AnswerAck{Correct: correct})
		}
	}
}

func serveWS(h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn().Err(err).Str("addr", realIP(r)).Msg("SERVE: websocket upgrade failed")
			return
		}

		c := &Client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan []byte, sendBuffer),
			limiter: rate.NewLimiter(rate.Limit(h.cfg.rateLimit), h.cfg.rateBurst),
			rooms:   make(map[string]bool),
		}

		h.register(c)

		h.log.Debug().Str("client", c.id).Str("addr", realIP(r)).Msg("SERVE: websocket connected")

		go c.writePump()
		c.readPump(h)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("client", c.id).Msg("SERVE: websocket read failed")
			}
			return
		}

		if !c.limiter.Allow() {
			h.log.Debug().Str("client", c.id).Msg("SERVE: rate limited")
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug().Err(err).Str("client", c.id).Msg("SERVE: malformed message")
			h.reject(c, data)
			continue
		}

		h.dispatch(c, msg)
	}
}

// reject acks a frame that could not be decoded, if it carried a ref.
func (h *Hub) reject(c *Client, data []byte) {
	var head struct {
		Ref int `json:"ref"`
	}
	if json.Unmarshal(data, &head) != nil || head.Ref == 0 {
		return
	}

	h.reply(c, head.Ref, SubmitAck{})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
