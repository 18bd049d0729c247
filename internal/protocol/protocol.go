// Package protocol defines the command/event surface between clients and
// the server, independent of the transport carrying it.
package protocol

import (
	"encoding/json"

	"github.com/rocketscienceinc/impostor-backend/internal/entity"
)

// Inbound actions (client -> server).
const (
	ActionCreateRoom   = "createRoom"
	ActionJoinRoom     = "joinRoom"
	ActionKickPlayer   = "kickPlayer"
	ActionStartGame    = "startGame"
	ActionGuessWord    = "guessWord"
	ActionForceEndGame = "forceEndGame"
	ActionNextTurn     = "nextTurn"
	ActionVote         = "vote"
)

// Outbound events (server -> client or room).
const (
	EventConnected          = "connected"
	EventErrorMsg           = "errorMsg"
	EventJoinedLobby        = "joinedLobby"
	EventUpdateRoom         = "updateRoom"
	EventKicked             = "kicked"
	EventGameStarted        = "gameStarted"
	EventUpdateTurn         = "updateTurn"
	EventStartVoting        = "startVoting"
	EventUpdateVotingStatus = "updateVotingStatus"
	EventGuessLocked        = "guessLocked"
	EventVotingResult       = "votingResult"
	EventResumeGame         = "resumeGame"
	EventGameOver           = "gameOver"
	EventReturnToLobby      = "returnToLobby"
	EventGameReset          = "gameReset"
)

// Message is an inbound command envelope.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is an outbound event envelope.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type CreateRoomPayload struct {
	Nickname string `json:"nickname"`
	RoomName string `json:"roomName"`
	Password string `json:"password"`
}

type JoinRoomPayload struct {
	Nickname string `json:"nickname"`
	RoomName string `json:"roomName"`
	Password string `json:"password"`
}

type KickPlayerPayload struct {
	TargetID string `json:"targetId"`
}

type StartGamePayload struct {
	SelectedCategories []string `json:"selectedCategories"`
}

type GuessWordPayload struct {
	Guess string `json:"guess"`
}

type VotePayload struct {
	TargetID string `json:"targetId"`
}

type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

type ErrorPayload struct {
	Text string `json:"text"`
}

// TextPayload carries a human-readable notice (guessLocked, gameReset).
type TextPayload struct {
	Text string `json:"text"`
}

// RoomPayload is the room snapshot broadcast on every roster, host or
// active-flag change.
type RoomPayload struct {
	RoomName            string           `json:"roomName"`
	Players             []*entity.Player `json:"players"`
	HostID              string           `json:"hostId"`
	GameActive          bool             `json:"gameActive"`
	AvailableCategories []string         `json:"availableCategories"`
}

// GameStartedPayload is delivered per player: the secret word is only set
// for civilians.
type GameStartedPayload struct {
	Role   entity.Role `json:"role"`
	Word   *string     `json:"word"`
	HostID string      `json:"hostId"`
}

type TurnPayload struct {
	Player *entity.Player `json:"player"`
}

type StartVotingPayload struct {
	Players []*entity.Player `json:"players"`
}

type VotingStatusPayload struct {
	PendingNames []string `json:"pendingNames"`
}

type VotingResultPayload struct {
	Result string `json:"result"`
}

type GameOverPayload struct {
	Winner       string `json:"winner"`
	Msg          string `json:"msg"`
	SecretWord   string `json:"secretWord"`
	ImpostorName string `json:"impostorName"`
}
