package game

import "errors"

var (
	// ErrAuthRequired rejects requests from a connection that has not authenticated.
	ErrAuthRequired = errors.New("game: authentication required")
	// ErrUnexpectedPlayerData rejects player data or metadata from a player not on a level.
	ErrUnexpectedPlayerData = errors.New("game: player data received outside a level")
	ErrVoiceTooLarge        = errors.New("game: voice packet too large")
	ErrVoiceRateLimited     = errors.New("game: voice throughput exceeded")
	ErrChatTooLong          = errors.New("game: chat message too long")
)
