package cursorwire

// Dispatcher routes outbound events to registered callbacks.
type Dispatcher struct {
	onCursor      func(CursorEvent)
	onRoomCreated func(RoomEvent)
	onError       func(error)
}

func (d *Dispatcher) SetOnCursor(fn func(CursorEvent))    { d.onCursor = fn }
func (d *Dispatcher) SetOnRoomCreated(fn func(RoomEvent)) { d.onRoomCreated = fn }
func (d *Dispatcher) SetOnError(fn func(error))           { d.onError = fn }

func (d *Dispatcher) Dispatch(out Outbound) {
	if out.Type == outboundError && out.Error != nil && d.onError != nil {
		d.onError(FromProtocolError(out.Error))
		return
	}
	switch out.Event {
	case eventCursor:
		if d.onCursor == nil {
			return
		}
		var ev CursorEvent
		if err := UnmarshalData(out.Data, &ev); err != nil {
			d.fireError(WrapError(ErrorSerialization, "failed to unmarshal cursor event", err))
			return
		}
		if ev.User == "" {
			// Malformed: no user to key presence on. Drop, never apply.
			d.fireError(NewError(ErrorMalformedEvent, "cursor event without user"))
			return
		}
		d.onCursor(ev)
	case eventRoomCreated:
		if d.onRoomCreated == nil {
			return
		}
		var ev RoomEvent
		if err := UnmarshalData(out.Data, &ev); err != nil {
			d.fireError(WrapError(ErrorSerialization, "failed to unmarshal room_created event", err))
			return
		}
		d.onRoomCreated(ev)
	}
}

func (d *Dispatcher) fireError(err error) {
	if d.onError != nil && err != nil {
		d.onError(err)
	}
}
