package state

// ServerState is the shared state of one game server process. Build it once at
// startup and hand the pointer to every connection.
type ServerState struct {
	Players *PlayerManager
}

func NewServerState() *ServerState {
	return &ServerState{Players: NewPlayerManager()}
}
