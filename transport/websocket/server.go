package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/impostor-backend/internal/protocol"
	"github.com/rocketscienceinc/impostor-backend/internal/usecase"
)

// gateway is the command surface the transport dispatches into.
type gateway interface {
	CreateRoom(playerID, nickname, roomName, password string) *usecase.Session
	JoinRoom(playerID, nickname, roomName, password string) *usecase.Session
	KickPlayer(sess *usecase.Session, targetID string) bool
	StartGame(sess *usecase.Session, selectedCategories []string)
	GuessWord(sess *usecase.Session, guess string)
	ForceEndGame(sess *usecase.Session)
	NextTurn(sess *usecase.Session)
	Vote(sess *usecase.Session, targetID string)
	Disconnect(sess *usecase.Session)
}

type Server struct {
	logger  *slog.Logger
	gateway gateway

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	handlers map[string]func(c *client, payload json.RawMessage)
}

// client is one connected player. The session is set on a successful
// create/join and cleared again when the player is kicked.
type client struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex // gorilla allows a single concurrent writer

	sessMu  sync.Mutex
	session *usecase.Session
}

func (that *client) setSession(sess *usecase.Session) {
	that.sessMu.Lock()
	defer that.sessMu.Unlock()
	that.session = sess
}

func (that *client) getSession() *usecase.Session {
	that.sessMu.Lock()
	defer that.sessMu.Unlock()
	return that.session
}

func New(logger *slog.Logger, gw gateway) *Server {
	server := &Server{
		logger:  logger,
		gateway: gw,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},

		clients:  make(map[string]*client),
		handlers: make(map[string]func(*client, json.RawMessage)),
	}

	server.handlers[protocol.ActionCreateRoom] = server.handleCreateRoom
	server.handlers[protocol.ActionJoinRoom] = server.handleJoinRoom
	server.handlers[protocol.ActionKickPlayer] = server.handleKickPlayer
	server.handlers[protocol.ActionStartGame] = server.handleStartGame
	server.handlers[protocol.ActionGuessWord] = server.handleGuessWord
	server.handlers[protocol.ActionForceEndGame] = server.handleForceEndGame
	server.handlers[protocol.ActionNextTurn] = server.handleNextTurn
	server.handlers[protocol.ActionVote] = server.handleVote

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection upgrades the request and runs the connection's read loop
// until the client goes away.
func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
	}

	that.register(c)
	log.Info("player connected", "playerID", c.id)

	that.Emit(c.id, protocol.EventConnected, protocol.ConnectedPayload{PlayerID: c.id})

	that.readLoop(c)

	that.unregister(c)
	that.gateway.Disconnect(c.getSession())
	_ = conn.Close()

	log.Info("player disconnected", "playerID", c.id)
}

func (that *Server) readLoop(c *client) {
	log := that.logger.With("method", "readLoop", "playerID", c.id)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var message protocol.Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			continue
		}

		handler(c, message.Payload)
	}
}

// Emit delivers one event to one player; it is the gateway's Emitter.
func (that *Server) Emit(playerID, event string, payload any) {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	data, err := json.Marshal(protocol.Event{Event: event, Payload: payload})
	if err != nil {
		that.logger.Error("failed to marshal event", "event", event, "error", err)
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err = c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		that.logger.Debug("failed to write event", "event", event, "playerID", playerID, "error", err)
	}
}

func (that *Server) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.clients[c.id] = c
}

func (that *Server) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()
	delete(that.clients, c.id)
}

func (that *Server) clearSession(playerID string) {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if ok {
		c.setSession(nil)
	}
}
