package rest

import "time"

// RoomInfo represents room metadata.
type RoomInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRoomRequest is the request body for creating a room.
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
