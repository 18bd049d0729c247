package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom() *Room {
	room := NewRoom("kitchen", "", "a")
	room.Players = []*Player{
		{ID: "a", Name: "Alice", Role: RoleCivilian},
		{ID: "b", Name: "Bob", Role: RoleImpostor},
		{ID: "c", Name: "Carol", Role: RoleCivilian},
	}

	return room
}

func TestRoom_FindPlayer(t *testing.T) {
	room := testRoom()

	require.NotNil(t, room.FindPlayer("b"))
	assert.Equal(t, "Bob", room.FindPlayer("b").Name)
	assert.Nil(t, room.FindPlayer("z"))
}

func TestRoom_RemovePlayer(t *testing.T) {
	room := testRoom()

	// When: an existing player is removed
	removed := room.RemovePlayer("b")

	// Then: the roster shrinks and keeps its order
	require.True(t, removed)
	assert.Equal(t, []string{"Alice", "Carol"}, room.PlayerNames())

	// When: the same player is removed again
	removed = room.RemovePlayer("b")

	// Then: nothing happens
	require.False(t, removed)
	assert.Len(t, room.Players, 2)
}

func TestRoom_Roles(t *testing.T) {
	room := testRoom()

	// Then: the impostor and civilians are split by role
	require.NotNil(t, room.Impostor())
	assert.Equal(t, "b", room.Impostor().ID)
	assert.Len(t, room.Civilians(), 2)

	// Given: a lobby room with no roles
	lobby := NewRoom("attic", "", "a")
	assert.Nil(t, lobby.Impostor())
	assert.Empty(t, lobby.Civilians())
}

func TestRoom_CurrentTurn(t *testing.T) {
	room := testRoom()
	room.Game.TurnIndex = 2

	require.NotNil(t, room.CurrentTurn())
	assert.Equal(t, "c", room.CurrentTurn().ID)

	// Given: an empty roster
	empty := NewRoom("attic", "", "a")
	assert.Nil(t, empty.CurrentTurn())
}

func TestGameState_IsActive(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected bool
	}{
		{PhaseLobby, false},
		{PhaseActive, true},
		{PhaseVoting, true},
		{PhaseResolved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			state := &GameState{Phase: tt.phase}
			assert.Equal(t, tt.expected, state.IsActive())
		})
	}
}
