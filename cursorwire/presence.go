package cursorwire

import (
	"fmt"
	"hash/fnv"
	"sync"
)

// Position is a viewport-center-relative point.
type Position struct {
	X int
	Y int
}

// Presence is the last known position of every remote user in the
// active room, last-write-wins per user. The local user is never
// inserted; own position lives in a separate slot on the Session.
type Presence struct {
	mu      sync.RWMutex
	cursors map[string]Position
}

// NewPresence creates an empty presence view.
func NewPresence() *Presence {
	return &Presence{cursors: make(map[string]Position)}
}

// Set upserts the position for a user.
func (p *Presence) Set(user string, pos Position) {
	p.mu.Lock()
	p.cursors[user] = pos
	p.mu.Unlock()
}

// Get returns the last known position for a user.
func (p *Presence) Get(user string) (Position, bool) {
	p.mu.RLock()
	pos, ok := p.cursors[user]
	p.mu.RUnlock()
	return pos, ok
}

// Snapshot returns a copy of the current view for rendering.
func (p *Presence) Snapshot() map[string]Position {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]Position, len(p.cursors))
	for user, pos := range p.cursors {
		out[user] = pos
	}
	return out
}

// Len reports how many remote users are tracked.
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cursors)
}

// Clear drops every entry. Called before re-subscribing so a stale
// cross-room cursor can never render.
func (p *Presence) Clear() {
	p.mu.Lock()
	p.cursors = make(map[string]Position)
	p.mu.Unlock()
}

// Color is an HSL cursor color.
type Color struct {
	Hue        int
	Saturation int
	Lightness  int
}

// CSS renders the color as a CSS hsl() value.
func (c Color) CSS() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.Hue, c.Saturation, c.Lightness)
}

// Palette assigns each observed username a color, lazily on first sight
// and stable for as long as the palette lives. The palette is scoped to
// one room subscription and reset on room switch, so it never grows past
// the set of users seen in the active room.
type Palette struct {
	mu     sync.Mutex
	colors map[string]Color
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{colors: make(map[string]Color)}
}

// Assign returns the user's color, creating one on first observation.
// The hue is derived from the username so assignment is stable.
func (p *Palette) Assign(user string) Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.colors[user]; ok {
		return c
	}
	c := Color{Hue: hueFor(user), Saturation: 100, Lightness: 50}
	p.colors[user] = c
	return c
}

// Lookup returns the assigned color without creating one.
func (p *Palette) Lookup(user string) (Color, bool) {
	p.mu.Lock()
	c, ok := p.colors[user]
	p.mu.Unlock()
	return c, ok
}

// Reset drops all assignments.
func (p *Palette) Reset() {
	p.mu.Lock()
	p.colors = make(map[string]Color)
	p.mu.Unlock()
}

func hueFor(user string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(user))
	return int(h.Sum32() % 360)
}
