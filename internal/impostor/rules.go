// Package impostor implements the round state machine of the social
// deduction game. Its transition functions are the only code that mutates a
// room's GameState.
package impostor

import (
	"math/rand"

	"github.com/rocketscienceinc/impostor-backend/internal/apperror"
	"github.com/rocketscienceinc/impostor-backend/internal/entity"
	"github.com/rocketscienceinc/impostor-backend/internal/normalize"
)

const MinPlayers = 3

const (
	WinnerImpostor  = "IMPOSTOR"
	WinnerCivilians = "CIVILIANS"
	WinnerNone      = "NONE"
)

// Start moves the room from the lobby into a running round: shuffles the
// turn order, assigns exactly one impostor, and draws the secret word from
// the deck.
func Start(room *entity.Room, deck []string, rng *rand.Rand) error {
	if room.Game.Phase != entity.PhaseLobby {
		return apperror.ErrNotAuthorized
	}

	if len(room.Players) < MinPlayers {
		return apperror.ErrNotEnoughPlayers
	}

	if len(deck) == 0 {
		return apperror.ErrEmptyDeck
	}

	rng.Shuffle(len(room.Players), func(i, j int) {
		room.Players[i], room.Players[j] = room.Players[j], room.Players[i]
	})

	impostorIndex := rng.Intn(len(room.Players))
	for i, player := range room.Players {
		if i == impostorIndex {
			player.Role = entity.RoleImpostor
		} else {
			player.Role = entity.RoleCivilian
		}
	}

	room.Game = &entity.GameState{
		Phase:    entity.PhaseActive,
		Votes:    make(map[string]string),
		Word:     deck[rng.Intn(len(deck))],
		CanGuess: true,
	}

	return nil
}

// TurnResult is the observable effect of a completed turn: either the next
// turn holder, or the start of the voting phase once everyone has spoken.
type TurnResult struct {
	Next          *entity.Player
	VotingStarted bool
}

// AdvanceTurn ends the current turn. Only the turn holder may do this.
func AdvanceTurn(room *entity.Room, playerID string) (*TurnResult, error) {
	game := room.Game
	if game.Phase != entity.PhaseActive {
		return nil, apperror.ErrNotAuthorized
	}

	if room.CurrentTurn().ID != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	game.TurnsCount++

	if game.TurnsCount >= len(room.Players) {
		game.Phase = entity.PhaseVoting
		return &TurnResult{VotingStarted: true}, nil
	}

	game.TurnIndex = (game.TurnIndex + 1) % len(room.Players)

	return &TurnResult{Next: room.CurrentTurn()}, nil
}

// VoteStatus describes the voting picture after a cast vote.
type VoteStatus struct {
	Pending         []string // names of players with no recorded vote
	GuessJustLocked bool     // all civilians voted for the first time this round
	AllVoted        bool
}

// CastVote records or overwrites the voter's ejection target. Votes are
// accepted at any point while the round is active; the last write wins.
func CastVote(room *entity.Room, voterID, targetID string) (*VoteStatus, error) {
	game := room.Game
	if !game.IsActive() {
		return nil, apperror.ErrNotAuthorized
	}

	if room.FindPlayer(voterID) == nil {
		return nil, apperror.ErrNotAuthorized
	}

	game.Votes[voterID] = targetID

	status := &VoteStatus{}
	for _, player := range room.Players {
		if _, ok := game.Votes[player.ID]; !ok {
			status.Pending = append(status.Pending, player.Name)
		}
	}

	if game.CanGuess && allCiviliansVoted(room) {
		game.CanGuess = false
		status.GuessJustLocked = true
	}

	status.AllVoted = len(game.Votes) == len(room.Players)

	return status, nil
}

func allCiviliansVoted(room *entity.Room) bool {
	for _, civilian := range room.Civilians() {
		if _, ok := room.Game.Votes[civilian.ID]; !ok {
			return false
		}
	}

	return true
}

// TallyResult is the outcome of a completed vote. Skip means no clear
// majority (an exact tie or the skip bucket winning): the round continues
// from the next turn holder. Otherwise Ejected is the voted-out player.
type TallyResult struct {
	Skip    bool
	Ejected *entity.Player
}

// ResolveVotes tallies the recorded votes. On a skip outcome the votes are
// cleared and the turn state prepared for the resumed round; on an ejection
// the round is resolved.
func ResolveVotes(room *entity.Room) *TallyResult {
	game := room.Game

	counts := map[string]int{entity.VoteSkip: 0}
	for _, player := range room.Players {
		counts[player.ID] = 0
	}

	for _, target := range game.Votes {
		if _, ok := counts[target]; ok {
			counts[target]++
		}
	}

	// Track every key holding the final maximum, so multi-way ties are
	// detected no matter the scan order.
	max := -1
	var leaders []string
	for id, count := range counts {
		switch {
		case count > max:
			max = count
			leaders = []string{id}
		case count == max:
			leaders = append(leaders, id)
		}
	}

	if len(leaders) != 1 || leaders[0] == entity.VoteSkip {
		game.Votes = make(map[string]string)
		game.TurnsCount = 0
		game.TurnIndex = (game.TurnIndex + 1) % len(room.Players)
		game.CanGuess = true
		game.Phase = entity.PhaseActive

		return &TallyResult{Skip: true}
	}

	game.Phase = entity.PhaseResolved

	return &TallyResult{Ejected: room.FindPlayer(leaders[0])}
}

// Guess is the impostor's attempt at the secret word. A correct guess wins
// the round for the impostor, a wrong one for the civilians; either way the
// round is resolved immediately.
func Guess(room *entity.Room, playerID, guess string) (string, error) {
	game := room.Game
	if !game.IsActive() || !game.CanGuess {
		return "", apperror.ErrNotAuthorized
	}

	player := room.FindPlayer(playerID)
	if player == nil || player.Role != entity.RoleImpostor {
		return "", apperror.ErrNotAuthorized
	}

	game.Phase = entity.PhaseResolved

	if normalize.Fold(guess) == normalize.Fold(game.Word) {
		return WinnerImpostor, nil
	}

	return WinnerCivilians, nil
}

// ForceEnd resolves the round with no winner.
func ForceEnd(room *entity.Room) error {
	if !room.Game.IsActive() {
		return apperror.ErrNotAuthorized
	}

	room.Game.Phase = entity.PhaseResolved

	return nil
}

// Reset returns the room to the lobby: roles cleared, counters zeroed,
// votes and word gone.
func Reset(room *entity.Room) {
	room.Game = entity.NewGameState()
	for _, player := range room.Players {
		player.Role = entity.RoleNone
	}
}
