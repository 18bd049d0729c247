package entity

// Role is what a player is secretly assigned for the round. Outside an
// active round every player holds RoleNone.
type Role string

const (
	RoleNone     Role = ""
	RoleCivilian Role = "civilian"
	RoleImpostor Role = "impostor"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"-"`
}
