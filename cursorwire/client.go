package cursorwire

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Client provides the low-level wire connection to a cursorwire server.
// Most applications drive it through a Session, which layers throttling,
// presence reconciliation and the room-scope state machine on top.
type Client struct {
	cfg        Config
	logger     Logger
	ws         *websocket.Conn
	writeCh    chan Inbound
	dispatcher Dispatcher

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
}

// NewClient constructs a client with provided config.
// Use DefaultConfig() as a starting point and modify as needed.
// Set timeouts to 0 to disable them. An empty User is resolved to a
// random display name, so the hello frame never announces an empty
// identity the server would refuse to publish for.
func NewClient(cfg Config) *Client {
	if cfg.User == "" {
		cfg.User = RandomUsername()
	}
	return &Client{
		cfg:     cfg,
		logger:  noopLogger{},
		writeCh: make(chan Inbound, 16),
	}
}

// User returns the display name the client announces in hello.
func (c *Client) User() string {
	return c.cfg.User
}

// SetLogger overrides logger (optional).
func (c *Client) SetLogger(l Logger) {
	if l == nil {
		return
	}
	c.logger = l
}

// OnCursor registers callback for cursor events.
func (c *Client) OnCursor(fn func(CursorEvent)) { c.dispatcher.SetOnCursor(fn) }

// OnRoomCreated registers callback for the live room-list feed.
func (c *Client) OnRoomCreated(fn func(RoomEvent)) { c.dispatcher.SetOnRoomCreated(fn) }

// OnError registers callback for errors.
func (c *Client) OnError(fn func(error)) { c.dispatcher.SetOnError(fn) }

// Connect dials the server, sends hello, and starts internal loops.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return errors.New("already connected")
	}
	c.mu.Unlock()

	if c.cfg.URL == "" {
		return NewError(ErrorInvalidConfig, "empty URL")
	}
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return WrapError(ErrorInvalidConfig, "bad URL", err)
	}

	dialCtx := ctx
	if c.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, u.String(), nil)
	if err != nil {
		return WrapError(ErrorConnection, "dial failed", err)
	}
	c.ws = ws

	hello := Inbound{
		Type: inboundHello,
		Data: HelloPayload{
			Protocol: ProtocolVersion,
			User:     c.cfg.User,
		},
	}
	if err := c.write(ctx, hello); err != nil {
		_ = ws.Close(websocket.StatusInternalError, "handshake error")
		return WrapError(ErrorConnection, "hello failed", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(runCtx)
	go c.writeLoop(runCtx)
	return nil
}

// Hello renames the session. Peers discover the new identity only
// through subsequent cursor events; there is no rename broadcast.
func (c *Client) Hello(ctx context.Context, user string) error {
	return c.send(ctx, Inbound{Type: inboundHello, Data: HelloPayload{Protocol: ProtocolVersion, User: user}})
}

// Subscribe installs the room filter for this session, replacing any
// previous one.
func (c *Client) Subscribe(ctx context.Context, room string) error {
	return c.send(ctx, Inbound{Type: inboundSubscribe, Data: SubscribePayload{Room: room}})
}

// Unsubscribe drops the room filter. Idempotent on the server side.
func (c *Client) Unsubscribe(ctx context.Context, room string) error {
	return c.send(ctx, Inbound{Type: inboundUnsubscribe, Data: SubscribePayload{Room: room}})
}

// PublishCursor sends one position sample. Fire-and-forget: the server
// never acknowledges cursor samples.
func (c *Client) PublishCursor(ctx context.Context, room string, x, y int) error {
	return c.send(ctx, Inbound{Type: inboundCursor, Data: CursorPayload{Room: room, X: x, Y: y}})
}

// Close shuts down client and closes the WebSocket.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.connected = false
	c.mu.Unlock()
	if c.ws != nil {
		return c.ws.Close(websocket.StatusNormalClosure, "client close")
	}
	return nil
}

func (c *Client) send(ctx context.Context, in Inbound) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return NewError(ErrorNotConnected, "not connected")
	}

	select {
	case c.writeCh <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// write sends one Inbound envelope under the configured write deadline.
func (c *Client) write(ctx context.Context, in Inbound) error {
	if c.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.WriteTimeout)
		defer cancel()
	}
	return wsjson.Write(ctx, c.ws, in)
}

// read receives one Outbound envelope under the configured read
// deadline. A zero ReadTimeout leaves the connection open across idle
// stretches, which is the normal case for a cursor room.
func (c *Client) read(ctx context.Context, out *Outbound) error {
	if c.cfg.ReadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ReadTimeout)
		defer cancel()
	}
	return wsjson.Read(ctx, c.ws, out)
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		var out Outbound
		if err := c.read(ctx, &out); err != nil {
			if isExpectedDisconnect(ctx, err) {
				return
			}
			c.dispatcher.Dispatch(Outbound{Type: outboundError, Error: &Error{Code: "read_error", Msg: err.Error()}})
			c.logger.Warn("read loop exit", map[string]any{"error": err.Error()})
			return
		}
		c.dispatcher.Dispatch(out)
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case in := <-c.writeCh:
			if err := c.write(ctx, in); err != nil {
				c.dispatcher.Dispatch(Outbound{Type: outboundError, Error: &Error{Code: "write_error", Msg: err.Error()}})
				c.logger.Warn("write loop exit", map[string]any{"error": err.Error()})
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
