// Package localdb stores the world in a goleveldb database.
package localdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

const (
	// dbDirname is the directory under the data dir holding the database
	dbDirname = "db"

	// worldKey is the key the encoded world is stored under
	worldKey = "world"
)

// WorldStoreAdapter implements WorldStore on leveldb. The database is opened
// per call and its file lock is held for the whole call, so an Update is one
// load, change, write span. Goroutines sharing the adapter queue on the mutex;
// another process fails fast on the file lock.
type WorldStoreAdapter struct {
	sync.Mutex
	path string
}

// NewWorldStoreAdapter creates a new WorldStoreAdapter
func NewWorldStoreAdapter(cfg *config.RuntimeConfig) *WorldStoreAdapter {
	return &WorldStoreAdapter{path: filepath.Join(cfg.DataDir, dbDirname)}
}

func (s *WorldStoreAdapter) withDB(fn func(db *leveldb.DB) error) error {
	s.Lock()
	defer s.Unlock()

	db, err := leveldb.OpenFile(s.path, nil)
	if err != nil {
		return fmt.Errorf("failed to open world database: %w", err)
	}
	defer db.Close()

	return fn(db)
}

// Load reads the world. Returns an empty world if none was saved.
func (s *WorldStoreAdapter) Load(_ context.Context) (*models.WorldState, error) {
	var world *models.WorldState
	err := s.withDB(func(db *leveldb.DB) error {
		var err error
		world, err = readWorld(db)
		return err
	})
	return world, err
}

// Save writes the world in a single batch
func (s *WorldStoreAdapter) Save(_ context.Context, world *models.WorldState) error {
	return s.withDB(func(db *leveldb.DB) error {
		return writeWorld(db, world)
	})
}

// Update loads the world, applies fn and writes the result, all under one
// open database. Nothing is written when fn fails.
func (s *WorldStoreAdapter) Update(ctx context.Context, fn func(*models.WorldState) error) error {
	return s.withDB(func(db *leveldb.DB) error {
		world, err := readWorld(db)
		if err != nil {
			return err
		}
		if err := fn(world); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return writeWorld(db, world)
	})
}

// Reset deletes the stored world
func (s *WorldStoreAdapter) Reset(_ context.Context) error {
	return s.withDB(func(db *leveldb.DB) error {
		if err := db.Delete([]byte(worldKey), nil); err != nil {
			return fmt.Errorf("failed to delete world: %w", err)
		}
		return nil
	})
}

func readWorld(db *leveldb.DB) (*models.WorldState, error) {
	data, err := db.Get([]byte(worldKey), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return models.NewWorldState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read world: %w", err)
	}

	world := &models.WorldState{}
	if err := json.Unmarshal(data, world); err != nil {
		return nil, fmt.Errorf("failed to parse world: %w", err)
	}
	world.Normalize()
	return world, nil
}

func writeWorld(db *leveldb.DB, world *models.WorldState) error {
	data, err := json.Marshal(world)
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put([]byte(worldKey), data)
	if err := db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write world: %w", err)
	}
	return nil
}

var _ usecase.WorldStore = (*WorldStoreAdapter)(nil)
