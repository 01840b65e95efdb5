package cursorwire

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ThrottleInterval != 150*time.Millisecond {
		t.Fatalf("ThrottleInterval = %v", cfg.ThrottleInterval)
	}
	// Idle rooms are the normal case; a default read deadline would
	// drop every session that sits still too long.
	if cfg.ReadTimeout != 0 {
		t.Fatalf("ReadTimeout = %v, want disabled", cfg.ReadTimeout)
	}
	if cfg.HandshakeTimeout == 0 || cfg.WriteTimeout == 0 {
		t.Fatalf("handshake/write timeouts unset: %+v", cfg)
	}
}
