package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/impostor-backend/internal/protocol"
)

func (that *Server) handleCreateRoom(c *client, payload json.RawMessage) {
	var req protocol.CreateRoomPayload
	if !that.unmarshal(payload, &req) {
		return
	}

	if sess := that.gateway.CreateRoom(c.id, req.Nickname, req.RoomName, req.Password); sess != nil {
		c.setSession(sess)
	}
}

func (that *Server) handleJoinRoom(c *client, payload json.RawMessage) {
	var req protocol.JoinRoomPayload
	if !that.unmarshal(payload, &req) {
		return
	}

	if sess := that.gateway.JoinRoom(c.id, req.Nickname, req.RoomName, req.Password); sess != nil {
		c.setSession(sess)
	}
}

func (that *Server) handleKickPlayer(c *client, payload json.RawMessage) {
	var req protocol.KickPlayerPayload
	if !that.unmarshal(payload, &req) {
		return
	}

	// The kicked connection stays open but loses its room; it may join
	// another room afterwards.
	if that.gateway.KickPlayer(c.getSession(), req.TargetID) {
		that.clearSession(req.TargetID)
	}
}

func (that *Server) handleStartGame(c *client, payload json.RawMessage) {
	var req protocol.StartGamePayload
	if !that.unmarshal(payload, &req) {
		return
	}

	that.gateway.StartGame(c.getSession(), req.SelectedCategories)
}

func (that *Server) handleGuessWord(c *client, payload json.RawMessage) {
	var req protocol.GuessWordPayload
	if !that.unmarshal(payload, &req) {
		return
	}

	that.gateway.GuessWord(c.getSession(), req.Guess)
}

func (that *Server) handleForceEndGame(c *client, _ json.RawMessage) {
	that.gateway.ForceEndGame(c.getSession())
}

func (that *Server) handleNextTurn(c *client, _ json.RawMessage) {
	that.gateway.NextTurn(c.getSession())
}

func (that *Server) handleVote(c *client, payload json.RawMessage) {
	var req protocol.VotePayload
	if !that.unmarshal(payload, &req) {
		return
	}

	that.gateway.Vote(c.getSession(), req.TargetID)
}

func (that *Server) unmarshal(payload json.RawMessage, v any) bool {
	if err := json.Unmarshal(payload, v); err != nil {
		that.logger.Debug("failed to unmarshal payload", "error", err)
		return false
	}

	return true
}
