package entity

// Phase is the current stage of a room's round.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseActive   Phase = "active"
	PhaseVoting   Phase = "voting"
	PhaseResolved Phase = "resolved"
)

// VoteSkip is the sentinel vote target for abstaining from an ejection.
const VoteSkip = "SKIP"

// GameState holds the per-round state of a room. It is owned by exactly one
// Room and is only ever mutated by the transition functions in the impostor
// package.
type GameState struct {
	Phase      Phase
	TurnIndex  int
	TurnsCount int
	Votes      map[string]string
	Word       string
	CanGuess   bool
}

// NewGameState returns the lobby defaults: no votes, no word, guessing off.
func NewGameState() *GameState {
	return &GameState{
		Phase: PhaseLobby,
	}
}

// IsActive reports whether a round is in progress. The resolved phase is the
// game-over cooldown: the round is decided and commands no longer apply.
func (that *GameState) IsActive() bool {
	return that.Phase == PhaseActive || that.Phase == PhaseVoting
}
