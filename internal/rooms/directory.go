// Package rooms maintains the set of known cursor rooms: a built-in
// default room plus user-created ones. Rooms are in-memory and never
// deleted.
package rooms

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultRoomID is the id of the well-known room that always exists.
const DefaultRoomID = "default"

// ErrEmptyName is returned when creating a room without a name.
var ErrEmptyName = errors.New("room name must not be empty")

// Room is one cursor room.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Directory is the in-memory room registry. List order is stable:
// the default room first, then creation order.
type Directory struct {
	mu        sync.RWMutex
	rooms     map[string]Room
	order     []string
	watchers  map[int]chan Room
	nextWatch int
}

// NewDirectory creates a directory seeded with the default room.
func NewDirectory() *Directory {
	now := time.Now().UTC()
	d := &Directory{
		rooms:    make(map[string]Room),
		watchers: make(map[int]chan Room),
	}
	def := Room{ID: DefaultRoomID, Name: DefaultRoomID, CreatedAt: now, UpdatedAt: now}
	d.rooms[def.ID] = def
	d.order = append(d.order, def.ID)
	return d
}

// Create adds a room with a fresh unique id and returns it
// synchronously, then notifies watchers.
func (d *Directory) Create(name string) (Room, error) {
	if name == "" {
		return Room{}, ErrEmptyName
	}
	now := time.Now().UTC()
	room := Room{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	d.mu.Lock()
	d.rooms[room.ID] = room
	d.order = append(d.order, room.ID)
	for _, ch := range d.watchers {
		select {
		case ch <- room:
		default:
		}
	}
	d.mu.Unlock()
	return room, nil
}

// Get returns the room by id.
func (d *Directory) Get(id string) (Room, bool) {
	d.mu.RLock()
	room, ok := d.rooms[id]
	d.mu.RUnlock()
	return room, ok
}

// List returns all rooms, default first, then creation order.
func (d *Directory) List() []Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Room, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.rooms[id])
	}
	return out
}

// Watcher is a live feed of newly created rooms.
type Watcher struct {
	id   int
	ch   chan Room
	d    *Directory
	once sync.Once
}

// Watch registers a feed of rooms created after this call. Used to push
// the live room list to connected clients without a manual refresh.
func (d *Directory) Watch() *Watcher {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextWatch++
	w := &Watcher{id: d.nextWatch, ch: make(chan Room, 8), d: d}
	d.watchers[w.id] = w.ch
	return w
}

// Rooms returns the watcher's channel. Closed by Close.
func (w *Watcher) Rooms() <-chan Room {
	return w.ch
}

// Close unregisters the watcher. Idempotent.
func (w *Watcher) Close() {
	w.once.Do(func() {
		w.d.mu.Lock()
		delete(w.d.watchers, w.id)
		close(w.ch)
		w.d.mu.Unlock()
	})
}
