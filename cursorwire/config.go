package cursorwire

import "time"

// Config controls how the SDK connects and publishes.
type Config struct {
	URL              string
	User             string // display name sent in hello; random if empty
	HandshakeTimeout time.Duration
	// ReadTimeout bounds a single read when non-zero. Cursor rooms sit
	// idle whenever nobody moves, so the default leaves it disabled; a
	// deadline here tears down healthy idle sessions.
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ThrottleInterval time.Duration // trailing-edge publish window
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ThrottleInterval: 150 * time.Millisecond,
	}
}
