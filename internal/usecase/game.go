package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/impostor-backend/internal/apperror"
	"github.com/rocketscienceinc/impostor-backend/internal/entity"
	"github.com/rocketscienceinc/impostor-backend/internal/impostor"
	"github.com/rocketscienceinc/impostor-backend/internal/protocol"
)

const recordTimeout = 5 * time.Second

// StartGame moves the caller's room from the lobby into a round. Host only;
// a non-host caller or a missing room is dropped silently, player-count and
// category failures go back to the caller as targeted errors.
func (that *GameManager) StartGame(sess *Session, selectedCategories []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok || room.HostID != sess.PlayerID {
		return
	}

	if len(room.Players) < impostor.MinPlayers {
		that.emitError(sess.PlayerID, apperror.ErrNotEnoughPlayers)
		return
	}

	if len(selectedCategories) == 0 {
		that.emitError(sess.PlayerID, apperror.ErrNoCategorySelected)
		return
	}

	deck := that.categories.Deck(selectedCategories)

	if err := impostor.Start(room, deck, that.rng); err != nil {
		if errors.Is(err, apperror.ErrNotAuthorized) {
			return // game already running, stale lobby UI
		}
		that.emitError(sess.PlayerID, err)
		return
	}

	for _, player := range room.Players {
		payload := protocol.GameStartedPayload{
			Role:   player.Role,
			HostID: room.HostID,
		}
		if player.Role == entity.RoleCivilian {
			word := room.Game.Word
			payload.Word = &word
		}
		that.emitter.Emit(player.ID, protocol.EventGameStarted, payload)
	}

	that.broadcastRoom(room)
	that.broadcast(room, protocol.EventUpdateTurn, protocol.TurnPayload{Player: room.CurrentTurn()})
}

// NextTurn ends the caller's turn. Anyone but the turn holder is ignored.
func (that *GameManager) NextTurn(sess *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok {
		return
	}

	result, err := impostor.AdvanceTurn(room, sess.PlayerID)
	if err != nil {
		return
	}

	if result.VotingStarted {
		that.broadcast(room, protocol.EventStartVoting, protocol.StartVotingPayload{Players: room.Players})
		that.broadcast(room, protocol.EventUpdateVotingStatus, protocol.VotingStatusPayload{PendingNames: room.PlayerNames()})
		return
	}

	that.broadcast(room, protocol.EventUpdateTurn, protocol.TurnPayload{Player: result.Next})
}

// Vote records the caller's ejection target, re-casting allowed. When the
// last vote lands the round is resolved.
func (that *GameManager) Vote(sess *Session, targetID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok {
		return
	}

	status, err := impostor.CastVote(room, sess.PlayerID, targetID)
	if err != nil {
		return
	}

	that.broadcast(room, protocol.EventUpdateVotingStatus, protocol.VotingStatusPayload{PendingNames: status.Pending})

	if status.GuessJustLocked {
		if imp := room.Impostor(); imp != nil {
			that.emitter.Emit(imp.ID, protocol.EventGuessLocked, protocol.TextPayload{Text: "All civilians have voted. Guessing is locked!"})
		}
	}

	if status.AllVoted {
		that.resolveVotes(room)
	}
}

// resolveVotes must run under the gateway lock.
func (that *GameManager) resolveVotes(room *entity.Room) {
	result := impostor.ResolveVotes(room)

	if result.Skip {
		that.broadcast(room, protocol.EventVotingResult, protocol.VotingResultPayload{Result: "skip"})

		that.schedule(room.Name, that.resumeDelay, func(room *entity.Room) {
			that.broadcast(room, protocol.EventResumeGame, protocol.TurnPayload{Player: room.CurrentTurn()})
		})

		return
	}

	if result.Ejected.Role == entity.RoleImpostor {
		that.finishGame(room, impostor.WinnerCivilians, "The impostor was ejected!")
		return
	}

	that.finishGame(room, impostor.WinnerImpostor, fmt.Sprintf("An innocent player was ejected (%s).", result.Ejected.Name))
}

// GuessWord is the impostor's word guess; wrong role, locked guessing or an
// inactive game are dropped silently.
func (that *GameManager) GuessWord(sess *Session, guess string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok {
		return
	}

	word := room.Game.Word

	winner, err := impostor.Guess(room, sess.PlayerID, guess)
	if err != nil {
		return
	}

	if winner == impostor.WinnerImpostor {
		that.finishGame(room, winner, fmt.Sprintf("The impostor guessed it! The word was %q. %s wins.", word, sess.Nickname))
		return
	}

	that.finishGame(room, winner, fmt.Sprintf("The impostor guessed wrong (%s)! The word was %q.", guess, word))
}

// ForceEndGame lets the host end a running round with no winner.
func (that *GameManager) ForceEndGame(sess *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.roomOf(sess)
	if !ok || room.HostID != sess.PlayerID {
		return
	}

	if err := impostor.ForceEnd(room); err != nil {
		return
	}

	that.finishGame(room, impostor.WinnerNone, "The host ended the game.")
}

// finishGame broadcasts the outcome and schedules the return to the lobby.
// Must run under the gateway lock, with the round already resolved.
func (that *GameManager) finishGame(room *entity.Room, winner, msg string) {
	impostorName := "Unknown"
	if imp := room.Impostor(); imp != nil {
		impostorName = imp.Name
	}

	that.broadcast(room, protocol.EventGameOver, protocol.GameOverPayload{
		Winner:       winner,
		Msg:          msg,
		SecretWord:   room.Game.Word,
		ImpostorName: impostorName,
	})

	that.recordResult(winner)

	// Cooldown before the lobby reappears, so clients can show the result.
	// If the room empties out in the meantime the reset is skipped.
	that.schedule(room.Name, that.lobbyDelay, func(room *entity.Room) {
		impostor.Reset(room)
		that.broadcast(room, protocol.EventReturnToLobby, nil)
		that.broadcastRoom(room)
	})
}

// recordResult writes the outcome to the results repository off the command
// path; a storage failure never reaches the players.
func (that *GameManager) recordResult(winner string) {
	if that.results == nil {
		return
	}

	log := that.logger.With("method", "recordResult")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.results.RecordResult(ctx, winner); err != nil {
			log.Error("failed to record game result", "winner", winner, "error", err)
		}
	}()
}
