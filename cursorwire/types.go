package cursorwire

import "encoding/json"

const (
	ProtocolVersion = 1

	inboundHello       = "hello"
	inboundSubscribe   = "subscribe"
	inboundUnsubscribe = "unsubscribe"
	inboundCursor      = "cursor"

	outboundEvent = "event"
	outboundError = "error"

	eventCursor      = "cursor"
	eventRoomCreated = "room_created"
)

// Inbound represents the envelope from client to server.
type Inbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Outbound is the envelope server -> client.
type Outbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *Error          `json:"error,omitempty"`
}

// HelloPayload initiates the session. Sending it again on a live
// connection renames the session; peers only learn the new name from
// subsequent cursor events.
type HelloPayload struct {
	Protocol int    `json:"protocol,omitempty"`
	User     string `json:"user,omitempty"`
}

// SubscribePayload installs the room filter for this session. The filter
// key is the room identifier, symmetric with CursorPayload.
type SubscribePayload struct {
	Room string `json:"room"`
}

// CursorPayload publishes one position sample to a room.
type CursorPayload struct {
	Room string `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Error describes a protocol error.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Msg
}

// UnmarshalData decodes RawMessage into target.
func UnmarshalData(data json.RawMessage, v any) error {
	return json.Unmarshal(data, v)
}
