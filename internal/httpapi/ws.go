package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/cursorwire/cursorwire-go/internal/broker"
	"github.com/cursorwire/cursorwire-go/internal/rooms"
)

// wsSession is one websocket connection: at most one live broker
// subscription (re-subscribing replaces it), plus the room-created feed
// every session receives regardless of subscription.
type wsSession struct {
	srv  *Server
	conn *websocket.Conn
	log  zerolog.Logger
	out  chan outbound

	mu   sync.Mutex
	user string
	sub  *broker.Subscription
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket accept failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := &wsSession{
		srv:  s,
		conn: conn,
		log:  s.log.With().Str("component", "ws").Logger(),
		out:  make(chan outbound, 32),
	}
	defer sess.teardown()

	watcher := s.rooms.Watch()
	defer watcher.Close()
	go sess.pumpRooms(watcher)
	go sess.writeLoop(ctx)

	sess.readLoop(ctx)
}

// readLoop processes inbound frames until the connection drops.
func (s *wsSession) readLoop(ctx context.Context) {
	for {
		var in inbound
		if err := wsjson.Read(ctx, s.conn, &in); err != nil {
			return
		}
		switch in.Type {
		case inboundHello:
			s.handleHello(in.Data)
		case inboundSubscribe:
			s.handleSubscribe(in.Data)
		case inboundUnsubscribe:
			s.handleUnsubscribe()
		case inboundCursor:
			s.handleCursor(in.Data)
		default:
			s.enqueue(errorFrame("invalid_message", "unknown frame type: "+in.Type))
		}
	}
}

func (s *wsSession) handleHello(data json.RawMessage) {
	var p helloPayload
	if err := json.Unmarshal(data, &p); err != nil {
		s.enqueue(errorFrame("invalid_message", "bad hello payload"))
		return
	}
	if p.Protocol != 0 && p.Protocol != protocolVersion {
		s.enqueue(errorFrame("unsupported_version", "unsupported protocol version"))
		return
	}
	s.mu.Lock()
	s.user = p.User
	s.mu.Unlock()
	s.log.Debug().Str("user", p.User).Msg("hello")
}

// handleSubscribe installs the room filter, replacing any previous
// subscription. The old one is closed before the new one is opened so an
// event from the old room can never follow the switch.
func (s *wsSession) handleSubscribe(data json.RawMessage) {
	var p subscribePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		s.enqueue(errorFrame("bad_request", "subscribe requires a room"))
		return
	}
	if _, ok := s.srv.rooms.Get(p.Room); !ok {
		s.enqueue(errorFrame("room_not_found", "no such room: "+p.Room))
		return
	}

	s.mu.Lock()
	if s.sub != nil {
		s.sub.Close()
	}
	sub := s.srv.broker.Subscribe(p.Room)
	s.sub = sub
	s.mu.Unlock()

	go s.pumpCursor(sub)
	s.log.Debug().Str("room", p.Room).Msg("subscribed")
}

func (s *wsSession) handleUnsubscribe() {
	s.mu.Lock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.mu.Unlock()
}

// handleCursor publishes one sample. Fire-and-forget: malformed or
// unroutable samples are dropped without an error frame, never killing
// the session over a single bad cursor update.
func (s *wsSession) handleCursor(data json.RawMessage) {
	var p cursorPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		s.log.Debug().Msg("dropping malformed cursor sample")
		return
	}
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == "" {
		s.log.Debug().Msg("dropping cursor sample before hello")
		return
	}
	if _, ok := s.srv.rooms.Get(p.Room); !ok {
		s.log.Debug().Str("room", p.Room).Msg("dropping cursor sample for unknown room")
		return
	}
	s.srv.broker.Publish(broker.Event{Room: p.Room, User: user, X: p.X, Y: p.Y})
}

// pumpCursor copies one subscription's events into the write queue.
// Exits when the subscription is closed.
func (s *wsSession) pumpCursor(sub *broker.Subscription) {
	for ev := range sub.Events() {
		s.enqueue(outbound{Type: outboundEvent, Event: eventCursor, Data: ev})
	}
}

// pumpRooms forwards the live room-list feed. Every connected session
// sees new rooms without a manual refresh.
func (s *wsSession) pumpRooms(w *rooms.Watcher) {
	for room := range w.Rooms() {
		s.enqueue(outbound{Type: outboundEvent, Event: eventRoomCreated, Data: roomCreatedPayload{Room: room}})
	}
}

func (s *wsSession) writeLoop(ctx context.Context) {
	for {
		select {
		case ov := <-s.out:
			if err := wsjson.Write(ctx, s.conn, ov); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// enqueue never blocks; a session that cannot drain its queue drops
// frames (best-effort, most-recent-wins).
func (s *wsSession) enqueue(ov outbound) {
	select {
	case s.out <- ov:
	default:
		s.log.Debug().Msg("dropping frame for slow session")
	}
}

func (s *wsSession) teardown() {
	s.mu.Lock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.mu.Unlock()
	_ = s.conn.Close(websocket.StatusNormalClosure, "session end")
}
