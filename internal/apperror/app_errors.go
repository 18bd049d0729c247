package apperror

import "errors"

var (
	ErrRoomNameTaken      = errors.New("room name is already taken")
	ErrRoomNotFound       = errors.New("room not found")
	ErrWrongPassword      = errors.New("wrong room password")
	ErrGameInProgress     = errors.New("game is in progress")
	ErrNicknameTaken      = errors.New("nickname is already taken")
	ErrNotHost            = errors.New("only the host can do that")
	ErrNotEnoughPlayers   = errors.New("at least 3 players are required")
	ErrNoCategorySelected = errors.New("at least 1 category must be selected")
	ErrEmptyDeck          = errors.New("selected categories have no words")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrNotAuthorized      = errors.New("action is not allowed in this state")
)
