package httpapi

import (
	"encoding/json"

	"github.com/cursorwire/cursorwire-go/internal/rooms"
)

// Wire envelopes, mirrored by the client SDK. The filter key is the
// room identifier on both publish and subscribe.

const protocolVersion = 1

const (
	inboundHello       = "hello"
	inboundSubscribe   = "subscribe"
	inboundUnsubscribe = "unsubscribe"
	inboundCursor      = "cursor"

	outboundEvent = "event"
	outboundError = "error"

	eventCursor      = "cursor"
	eventRoomCreated = "room_created"
)

type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Type  string     `json:"type"`
	Event string     `json:"event,omitempty"`
	Data  any        `json:"data,omitempty"`
	Error *wireError `json:"error,omitempty"`
}

type wireError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

type helloPayload struct {
	Protocol int    `json:"protocol,omitempty"`
	User     string `json:"user,omitempty"`
}

type subscribePayload struct {
	Room string `json:"room"`
}

type cursorPayload struct {
	Room string `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type roomCreatedPayload struct {
	Room rooms.Room `json:"room"`
}

func errorFrame(code, msg string) outbound {
	return outbound{Type: outboundError, Error: &wireError{Code: code, Msg: msg}}
}
