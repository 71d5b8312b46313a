package services

import "github.com/rotisserie/eris"

var (
	ErrSessionNotFound   = eris.New("session not found")
	ErrSessionClosed     = eris.New("session is closed")
	ErrInvalidShareCode  = eris.New("invalid share code")
	ErrPlayerNotFound    = eris.New("player not found")
	ErrDuplicateName     = eris.New("player name already taken in this session")
	ErrInvalidName       = eris.New("player name is empty")
	ErrGameNotFound      = eris.New("game not found")
	ErrGameNotInProgress = eris.New("game is not in progress")
	ErrInvalidCourts     = eris.New("court count must be at least 1")
)
