package entity

// Room is an isolated game session keyed by a unique name. The player slice
// order doubles as turn order once the round starts.
type Room struct {
	Name     string
	Password string
	HostID   string
	Players  []*Player
	Game     *GameState
}

func NewRoom(name, password, hostID string) *Room {
	return &Room{
		Name:     name,
		Password: password,
		HostID:   hostID,
		Players:  []*Player{},
		Game:     NewGameState(),
	}
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

func (that *Room) FindPlayer(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

func (that *Room) HasNickname(name string) bool {
	for _, player := range that.Players {
		if player.Name == name {
			return true
		}
	}

	return false
}

// RemovePlayer removes the player with the given id from the roster and
// reports whether it was present.
func (that *Room) RemovePlayer(id string) bool {
	for i, player := range that.Players {
		if player.ID == id {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return true
		}
	}

	return false
}

// CurrentTurn returns the player whose turn it is, or nil if the roster is
// empty.
func (that *Room) CurrentTurn() *Player {
	if len(that.Players) == 0 {
		return nil
	}

	return that.Players[that.Game.TurnIndex%len(that.Players)]
}

func (that *Room) Impostor() *Player {
	for _, player := range that.Players {
		if player.Role == RoleImpostor {
			return player
		}
	}

	return nil
}

func (that *Room) Civilians() []*Player {
	civilians := make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		if player.Role == RoleCivilian {
			civilians = append(civilians, player)
		}
	}

	return civilians
}

func (that *Room) PlayerNames() []string {
	names := make([]string, 0, len(that.Players))
	for _, player := range that.Players {
		names = append(names, player.Name)
	}

	return names
}
