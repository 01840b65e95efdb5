package cursorwire

import "time"

// CursorEvent emitted when a peer publishes a position sample.
// Coordinates are viewport-center-relative integers. A later event for
// the same (room, user) pair supersedes the prior one.
type CursorEvent struct {
	Room string `json:"room"`
	User string `json:"user"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Room is the metadata of one cursor room.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomEvent emitted to every connected session when a room is created.
type RoomEvent struct {
	Room Room `json:"room"`
}
