package cursorwire

import (
	"strings"
	"testing"
)

func TestRandomUsernameShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := RandomUsername()
		parts := strings.Split(name, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			t.Fatalf("unexpected username %q", name)
		}
	}
}
