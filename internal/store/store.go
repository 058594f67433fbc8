// Package store persists the room catalog: a mapping from room ID to
// room record including its bookings. The whole mapping is rewritten on
// every save; there is no incremental format.
package store

import (
	"context"
	"fmt"

	"floorten/internal/config"
	"floorten/internal/models"
)

// Store loads and saves the full room catalog.
type Store interface {
	Load(ctx context.Context) (map[string]*models.Room, error)
	Save(ctx context.Context, rooms map[string]*models.Room) error
	Close() error
}

// DefaultRooms returns the seed catalog used when no persisted state
// exists yet.
func DefaultRooms() map[string]*models.Room {
	seed := []*models.Room{
		models.NewRoom("NEST", "The Nest", 30),
		models.NewRoom("TREEHOUSE", "The Treehouse", 15),
		models.NewRoom("LIGHTHOUSE", "The Lighthouse", 15),
		models.NewRoom("RAVEN", "Raven", 4),
		models.NewRoom("HUMMINGBIRD", "Hummingbird", 4),
	}
	rooms := make(map[string]*models.Room, len(seed))
	for _, r := range seed {
		rooms[r.RoomID] = r
	}
	return rooms
}

// New constructs the store backend selected by configuration.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case "file":
		return NewFileStore(cfg.Store.Path)
	case "redis":
		return NewRedisStore(cfg.Store.Redis)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
