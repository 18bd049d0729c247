package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/impostor-backend/internal/apperror"
	"github.com/rocketscienceinc/impostor-backend/internal/entity"
)

func TestRegistry_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		reg := New()

		// When: a room is created
		room, err := reg.Create("kitchen", "secret", "host-1")

		// Then: it starts empty, in the lobby, with the given host
		require.NoError(t, err)
		require.NotNil(t, room)
		assert.Equal(t, "kitchen", room.Name)
		assert.Equal(t, "host-1", room.HostID)
		assert.Empty(t, room.Players)
		assert.Equal(t, entity.PhaseLobby, room.Game.Phase)
	})

	t.Run("Create_NameTaken", func(t *testing.T) {
		reg := New()

		_, err := reg.Create("kitchen", "", "host-1")
		require.NoError(t, err)

		// When: a second room wants the same name
		_, err = reg.Create("kitchen", "", "host-2")

		// Then: an ErrRoomNameTaken error should be returned
		require.ErrorIs(t, err, apperror.ErrRoomNameTaken)
	})
}

func TestRegistry_Get(t *testing.T) {
	reg := New()

	created, err := reg.Create("kitchen", "", "host-1")
	require.NoError(t, err)

	// When: the room is looked up
	room, err := reg.Get("kitchen")

	// Then: the same instance comes back
	require.NoError(t, err)
	assert.Same(t, created, room)

	// When: an unknown name is looked up
	_, err = reg.Get("attic")

	// Then: an ErrRoomNotFound error should be returned
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
}

func TestRegistry_Remove(t *testing.T) {
	reg := New()

	_, err := reg.Create("kitchen", "", "host-1")
	require.NoError(t, err)

	// When: the room is removed
	reg.Remove("kitchen")

	// Then: it can no longer be found
	_, err = reg.Get("kitchen")
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)

	// Removing again is a no-op
	reg.Remove("kitchen")
}
