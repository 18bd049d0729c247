// Package registry holds the process-wide mapping from room name to room.
// It is not safe for concurrent use by itself; the gateway serializes all
// access under its own lock.
package registry

import (
	"github.com/rocketscienceinc/impostor-backend/internal/apperror"
	"github.com/rocketscienceinc/impostor-backend/internal/entity"
)

type Registry struct {
	rooms map[string]*entity.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*entity.Room),
	}
}

// Create registers a new room with an empty roster and lobby game state.
func (that *Registry) Create(name, password, hostID string) (*entity.Room, error) {
	if _, ok := that.rooms[name]; ok {
		return nil, apperror.ErrRoomNameTaken
	}

	room := entity.NewRoom(name, password, hostID)
	that.rooms[name] = room

	return room, nil
}

func (that *Registry) Get(name string) (*entity.Room, error) {
	room, ok := that.rooms[name]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// Remove deletes the room; removing an absent name is a no-op.
func (that *Registry) Remove(name string) {
	delete(that.rooms, name)
}
