package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"floorten/internal/models"
)

// FileStore persists the catalog as a JSON file, rewritten atomically on
// every save.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads the catalog, seeding and persisting the default rooms when
// no file exists yet. A file that exists but cannot be parsed is an
// error; startup must not continue with an invalid catalog.
func (s *FileStore) Load(ctx context.Context) (map[string]*models.Room, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		rooms := DefaultRooms()
		if err := s.Save(ctx, rooms); err != nil {
			return nil, err
		}
		return rooms, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decodeCatalog(data)
}

func (s *FileStore) Save(ctx context.Context, rooms map[string]*models.Room) error {
	data, err := encodeCatalog(rooms)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
