package cursorwire

// SessionState represents the current state of a cursor session.
type SessionState int

const (
	// StateDisconnected means the session has no live connection.
	StateDisconnected SessionState = iota

	// StateSubscribing means the session is installing a room filter.
	StateSubscribing

	// StateActive means the session is subscribed and publishing to a room.
	StateActive

	// StateClosed means the session has been explicitly closed.
	StateClosed
)

// String returns the string representation of a SessionState.
func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateSubscribing:
		return "subscribing"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// StateEvent represents a session state change.
type StateEvent struct {
	OldState SessionState
	NewState SessionState
	Room     string
	User     string
}
