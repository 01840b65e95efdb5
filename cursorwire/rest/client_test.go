package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateRoom(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/rooms" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req CreateRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if req.Name != "standup" {
			t.Errorf("name = %q", req.Name)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(RoomInfo{ID: "r1", Name: req.Name})
	}))
	defer ts.Close()

	c := NewClient(ts.URL + "/api")
	room, err := c.CreateRoom(context.Background(), "standup")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID != "r1" || room.Name != "standup" {
		t.Fatalf("unexpected room: %+v", room)
	}
}

func TestListRooms(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]RoomInfo{{ID: "default", Name: "default"}, {ID: "r1", Name: "standup"}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL + "/api")
	rooms, err := c.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != "default" {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
}

func TestAPIErrorSurfaced(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "room name must not be empty"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL + "/api")
	_, err := c.CreateRoom(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
}
