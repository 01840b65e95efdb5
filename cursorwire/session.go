package cursorwire

import (
	"context"
	"math"
	"sync"
	"time"
)

// Transport is the subset of Client a Session drives. Split out so the
// state machine is testable without a live connection.
type Transport interface {
	Hello(ctx context.Context, user string) error
	Subscribe(ctx context.Context, room string) error
	Unsubscribe(ctx context.Context, room string) error
	PublishCursor(ctx context.Context, room string, x, y int) error
}

// Session is the per-user cursor session: it owns the presence view, the
// color palette, the local identity and the throttled publisher, and
// enforces the room-scope lifecycle:
//
//	Disconnected -> Subscribing(room) -> Active(room, user)
//
// Changing the room or the username bumps the session epoch, recreates
// the throttler, clears presence and colors BEFORE the new subscribe is
// sent, and drops any event or pending flush tagged with an older epoch.
// All shared state is serialized on one mutex; callbacks arriving from
// the read loop and samples arriving from the UI may race freely.
type Session struct {
	mu       sync.Mutex
	tr       Transport
	logger   Logger
	interval time.Duration

	state SessionState
	room  string
	user  string
	epoch uint64

	presence *Presence
	palette  *Palette
	throttle *Throttler

	self    Position
	hasSelf bool

	onState func(StateEvent)
}

// NewSession creates a session over the given transport. cfg.User is the
// local display name (randomized when empty); cfg.ThrottleInterval is
// the publish window (DefaultConfig's 150ms when zero).
func NewSession(tr Transport, cfg Config) *Session {
	user := cfg.User
	if user == "" {
		user = RandomUsername()
	}
	interval := cfg.ThrottleInterval
	if interval <= 0 {
		interval = DefaultConfig().ThrottleInterval
	}
	return &Session{
		tr:       tr,
		logger:   noopLogger{},
		interval: interval,
		state:    StateDisconnected,
		user:     user,
		presence: NewPresence(),
		palette:  NewPalette(),
	}
}

// SetLogger overrides logger (optional).
func (s *Session) SetLogger(l Logger) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// OnStateChange registers a callback for session state transitions.
func (s *Session) OnStateChange(fn func(StateEvent)) {
	s.mu.Lock()
	s.onState = fn
	s.mu.Unlock()
}

// SelectRoom switches the active room scope. The presence view and
// palette are emptied before the new subscribe frame goes out, so a
// stale cross-room cursor can never render. Safe to call repeatedly;
// selecting the current room re-opens the subscription.
func (s *Session) SelectRoom(ctx context.Context, room string) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	return s.rebind(ctx, room, user)
}

// SetUsername renames the local identity and re-scopes the subscription,
// since the username drives self-exclusion. The rename is not broadcast;
// peers learn it from subsequent cursor events.
func (s *Session) SetUsername(ctx context.Context, user string) error {
	if user == "" {
		return NewError(ErrorInvalidConfig, "empty username")
	}
	s.mu.Lock()
	room := s.room
	noScope := s.state == StateDisconnected
	if noScope {
		s.user = user
	}
	s.mu.Unlock()

	if noScope {
		if err := s.tr.Hello(ctx, user); err != nil {
			s.logOrDrop("hello dropped", err)
		}
		return nil
	}
	return s.rebind(ctx, room, user)
}

// rebind is the single transition path for room or identity changes.
func (s *Session) rebind(ctx context.Context, room, user string) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return NewError(ErrorStaleHandle, "session closed")
	}
	oldRoom := s.room
	wasActive := s.state == StateActive

	s.epoch++
	epoch := s.epoch
	if s.throttle != nil {
		s.throttle.Stop()
	}
	s.room, s.user = room, user
	// Clear-then-resubscribe: the view must be empty before the new
	// subscription's first event can possibly arrive.
	s.presence.Clear()
	s.palette.Reset()
	s.throttle = s.newThrottlerLocked(room, epoch)
	fire := s.setStateLocked(StateSubscribing)
	tr := s.tr
	s.mu.Unlock()
	fire()

	if wasActive && oldRoom != "" {
		if err := tr.Unsubscribe(ctx, oldRoom); err != nil {
			s.logOrDrop("unsubscribe dropped", err)
		}
	}
	// Announce the identity this scope publishes under before the filter
	// is installed, so the server and self-exclusion agree on the name
	// even when it was resolved locally.
	if err := tr.Hello(ctx, user); err != nil {
		s.logOrDrop("hello dropped", err)
	}
	if err := tr.Subscribe(ctx, room); err != nil {
		return WrapError(ErrorConnection, "subscribe failed", err)
	}

	s.mu.Lock()
	if s.epoch != epoch || s.state == StateClosed {
		// Superseded while the subscribe was in flight.
		s.mu.Unlock()
		return nil
	}
	fire = s.setStateLocked(StateActive)
	s.mu.Unlock()
	fire()
	return nil
}

// PointerMove ingests one raw pointer sample. The own-position slot is
// updated from every sample, un-throttled; the outbound publish goes
// through the trailing-edge throttler. Coordinates are normalized to the
// distance from viewport center, so the local client is logically
// centered.
func (s *Session) PointerMove(clientX, clientY, viewportW, viewportH float64) {
	x := int(math.Round(viewportW/2 - clientX))
	y := int(math.Round(viewportH/2 - clientY))

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.self = Position{X: x, Y: y}
	s.hasSelf = true
	th := s.throttle
	s.mu.Unlock()

	if th != nil {
		th.Sample(x, y)
	}
}

// HandleCursor applies one received cursor event to the presence view.
// Wire it to Client.OnCursor. Self events and events for a room that is
// no longer current are discarded.
func (s *Session) HandleCursor(ev CursorEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive && s.state != StateSubscribing {
		return
	}
	if ev.Room != s.room {
		// Late delivery from a superseded subscription.
		s.logger.Debug("stale cursor event dropped", map[string]any{"room": ev.Room, "user": ev.User})
		return
	}
	if ev.User == "" || ev.User == s.user {
		return
	}
	s.palette.Assign(ev.User)
	s.presence.Set(ev.User, Position{X: ev.X, Y: ev.Y})
}

// Snapshot returns the remote presence view for rendering.
func (s *Session) Snapshot() map[string]Position {
	s.mu.Lock()
	p := s.presence
	s.mu.Unlock()
	return p.Snapshot()
}

// ColorFor returns the color assigned to a remote user, if any.
func (s *Session) ColorFor(user string) (Color, bool) {
	s.mu.Lock()
	p := s.palette
	s.mu.Unlock()
	return p.Lookup(user)
}

// SelfPosition returns the local cursor position, tracked separately
// from the remote presence map.
func (s *Session) SelfPosition() (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.self, s.hasSelf
}

// Room returns the currently selected room id.
func (s *Session) Room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

// Username returns the current local display name.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close terminates the session. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	if s.throttle != nil {
		s.throttle.Stop()
	}
	s.epoch++
	fire := s.setStateLocked(StateClosed)
	s.mu.Unlock()
	fire()
}

// newThrottlerLocked binds a fresh throttler to one (room, epoch) scope.
// The flush re-checks the epoch so a tick that raced a rebind cannot
// publish under the old scope. Publish failures are swallowed: cursor
// delivery is best-effort and the next tick retries naturally.
func (s *Session) newThrottlerLocked(room string, epoch uint64) *Throttler {
	return NewThrottler(s.interval, func(x, y int) {
		s.mu.Lock()
		stale := s.epoch != epoch || s.state == StateClosed
		tr := s.tr
		s.mu.Unlock()
		if stale {
			return
		}
		if err := tr.PublishCursor(context.Background(), room, x, y); err != nil {
			s.logOrDrop("publish dropped", err)
		}
	})
}

// setStateLocked transitions state and returns a closure that fires the
// callback outside the lock.
func (s *Session) setStateLocked(next SessionState) func() {
	old := s.state
	s.state = next
	fn := s.onState
	if fn == nil || old == next {
		return func() {}
	}
	ev := StateEvent{OldState: old, NewState: next, Room: s.room, User: s.user}
	return func() { fn(ev) }
}

func (s *Session) logOrDrop(msg string, err error) {
	s.mu.Lock()
	l := s.logger
	s.mu.Unlock()
	l.Debug(msg, map[string]any{"error": err.Error()})
}
