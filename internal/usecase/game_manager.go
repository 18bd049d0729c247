package usecase

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/impostor-backend/internal/apperror"
	"github.com/rocketscienceinc/impostor-backend/internal/config"
	"github.com/rocketscienceinc/impostor-backend/internal/entity"
	"github.com/rocketscienceinc/impostor-backend/internal/impostor"
	"github.com/rocketscienceinc/impostor-backend/internal/protocol"
	"github.com/rocketscienceinc/impostor-backend/internal/registry"
	"github.com/rocketscienceinc/impostor-backend/internal/words"
)

// Emitter delivers an outbound event to a single connected player. The
// transport implements it; broadcasts are fan-out over a room's roster.
type Emitter interface {
	Emit(playerID, event string, payload any)
}

type resultsRepo interface {
	RecordResult(ctx context.Context, winner string) error
}

// Session identifies a joined player: it is returned from CreateRoom and
// JoinRoom and must be threaded through every subsequent command.
type Session struct {
	PlayerID string
	Nickname string
	RoomName string
}

// GameManager is the session gateway: it validates every inbound command,
// mutates room and game state, and broadcasts the resulting events.
//
// A single mutex serializes all command handlers and timer callbacks, so
// each handler runs to completion (broadcasts included) before the next one
// starts. Stale commands are re-validated here rather than trusting the
// client's view of the room.
type GameManager struct {
	logger     *slog.Logger
	registry   *registry.Registry
	categories words.Categories
	results    resultsRepo
	emitter    Emitter

	resumeDelay time.Duration
	lobbyDelay  time.Duration

	mu     sync.Mutex
	rng    *rand.Rand
	timers map[string]*time.Timer // pending delayed task, keyed by room name
}

func NewGameManager(logger *slog.Logger, reg *registry.Registry, categories words.Categories, results resultsRepo, conf config.Game) *GameManager {
	return &GameManager{
		logger:     logger,
		registry:   reg,
		categories: categories,
		results:    results,

		resumeDelay: conf.ResumeDelay,
		lobbyDelay:  conf.LobbyDelay,

		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // game shuffling, not crypto
		timers: make(map[string]*time.Timer),
	}
}

// SetEmitter attaches the transport. Must be called before any command is
// dispatched.
func (that *GameManager) SetEmitter(emitter Emitter) {
	that.emitter = emitter
}

// CreateRoom creates a room with the caller as host and joins it. Returns
// nil if the name is taken; the error is delivered to the caller only.
func (that *GameManager) CreateRoom(playerID, nickname, roomName, password string) *Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Create(roomName, password, playerID)
	if err != nil {
		that.emitError(playerID, err)
		return nil
	}

	return that.joinRoom(room, playerID, nickname)
}

// JoinRoom adds the caller to an existing room's lobby.
func (that *GameManager) JoinRoom(playerID, nickname, roomName, password string) *Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.Get(roomName)
	if err != nil {
		that.emitError(playerID, err)
		return nil
	}

	if room.Password != "" && room.Password != password {
		that.emitError(playerID, apperror.ErrWrongPassword)
		return nil
	}

	if room.Game.Phase != entity.PhaseLobby {
		that.emitError(playerID, apperror.ErrGameInProgress)
		return nil
	}

	if room.HasNickname(nickname) {
		that.emitError(playerID, apperror.ErrNicknameTaken)
		return nil
	}

	return that.joinRoom(room, playerID, nickname)
}

// joinRoom must run under the gateway lock.
func (that *GameManager) joinRoom(room *entity.Room, playerID, nickname string) *Session {
	room.Players = append(room.Players, &entity.Player{ID: playerID, Name: nickname})

	that.broadcastRoom(room)
	that.emitter.Emit(playerID, protocol.EventJoinedLobby, nil)

	return &Session{
		PlayerID: playerID,
		Nickname: nickname,
		RoomName: room.Name,
	}
}

// KickPlayer removes the target from the caller's room. Host only, and the
// host cannot kick itself. Reports whether the target was removed so the
// transport can drop its session.
func (that *GameManager) KickPlayer(sess *Session, targetID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok || room.HostID != sess.PlayerID || targetID == sess.PlayerID {
		return false
	}

	if !room.RemovePlayer(targetID) {
		return false
	}

	that.emitter.Emit(targetID, protocol.EventKicked, nil)
	that.broadcastRoom(room)

	return true
}

// Disconnect handles a transport-level departure, in any phase: the player
// leaves the roster and its recorded vote, the room is destroyed when
// emptied, the host role is handed off, and an active game collapses back
// to the lobby when fewer than 3 players remain.
func (that *GameManager) Disconnect(sess *Session) {
	if sess == nil {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok {
		return
	}

	room.RemovePlayer(sess.PlayerID)
	if room.Game.Votes != nil {
		delete(room.Game.Votes, sess.PlayerID)
	}

	if room.IsEmpty() {
		that.destroyRoom(room)
		return
	}

	if room.HostID == sess.PlayerID {
		room.HostID = room.Players[0].ID
	}

	if room.Game.IsActive() && len(room.Players) < impostor.MinPlayers {
		impostor.Reset(room)
		that.broadcast(room, protocol.EventGameReset, protocol.TextPayload{Text: "Not enough players. The game was interrupted."})
		that.broadcast(room, protocol.EventReturnToLobby, nil)
	}

	that.broadcastRoom(room)
}

// roomOf resolves the session's room, re-validating existence under the
// lock: the session may be stale by the time the command runs.
func (that *GameManager) roomOf(sess *Session) (*entity.Room, bool) {
	if sess == nil {
		return nil, false
	}

	room, err := that.registry.Get(sess.RoomName)
	if err != nil {
		return nil, false
	}

	return room, true
}

// destroyRoom must run under the gateway lock. Pending delayed tasks for
// the room are cancelled along with it.
func (that *GameManager) destroyRoom(room *entity.Room) {
	if timer, ok := that.timers[room.Name]; ok {
		timer.Stop()
		delete(that.timers, room.Name)
	}

	that.registry.Remove(room.Name)
}

// schedule arms the room's delayed task, replacing any pending one. The
// callback re-acquires the gateway lock and must re-check that the room
// still exists: a timer may fire concurrently with the room's destruction.
func (that *GameManager) schedule(roomName string, delay time.Duration, fn func(room *entity.Room)) {
	if timer, ok := that.timers[roomName]; ok {
		timer.Stop()
	}

	that.timers[roomName] = time.AfterFunc(delay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.timers, roomName)

		room, err := that.registry.Get(roomName)
		if err != nil {
			return
		}

		fn(room)
	})
}

func (that *GameManager) broadcast(room *entity.Room, event string, payload any) {
	for _, player := range room.Players {
		that.emitter.Emit(player.ID, event, payload)
	}
}

func (that *GameManager) broadcastRoom(room *entity.Room) {
	that.broadcast(room, protocol.EventUpdateRoom, protocol.RoomPayload{
		RoomName:            room.Name,
		Players:             room.Players,
		HostID:              room.HostID,
		GameActive:          room.Game.IsActive(),
		AvailableCategories: that.categories.Names(),
	})
}

func (that *GameManager) emitError(playerID string, err error) {
	that.emitter.Emit(playerID, protocol.EventErrorMsg, protocol.ErrorPayload{Text: err.Error()})
}
