package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// WorldStoreAdapter implements WorldStore as a JSON file. Updates hold a
// file lock under the data dir so concurrent invocations cannot interleave.
type WorldStoreAdapter struct {
	mu        sync.Mutex
	statePath string
	lockPath  string
}

// NewWorldStoreAdapter creates a new WorldStoreAdapter
func NewWorldStoreAdapter(cfg *config.RuntimeConfig) *WorldStoreAdapter {
	return &WorldStoreAdapter{
		statePath: filepath.Join(cfg.DataDir, "world.json"),
		lockPath:  filepath.Join(cfg.DataDir, "lock"),
	}
}

// locked runs fn holding the in-process mutex and the on-disk lock. Another
// process holding the lock makes this fail fast.
func (s *WorldStoreAdapter) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := storage.OpenFile(s.lockPath, false)
	if err != nil {
		return fmt.Errorf("failed to lock world: %w", err)
	}
	defer lock.Close()

	return fn()
}

// Update loads the world, applies fn and saves the result under the lock.
// Nothing is written when fn fails.
func (s *WorldStoreAdapter) Update(ctx context.Context, fn func(*models.WorldState) error) error {
	return s.locked(func() error {
		world, err := s.Load(ctx)
		if err != nil {
			return err
		}
		if err := fn(world); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.Save(ctx, world)
	})
}

// Load reads the world from disk. Returns an empty world if the file does not exist.
func (s *WorldStoreAdapter) Load(_ context.Context) (*models.WorldState, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewWorldState(), nil
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var world models.WorldState
	if err := json.Unmarshal(data, &world); err != nil {
		return nil, fmt.Errorf("failed to parse world file: %w", err)
	}
	world.Normalize()

	return &world, nil
}

// Save writes the world to disk, creating the directory if needed. The file
// is replaced by rename so a crash never leaves half a world behind.
func (s *WorldStoreAdapter) Save(_ context.Context, world *models.WorldState) error {
	dir := filepath.Dir(s.statePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create world directory: %w", err)
	}

	data, err := json.MarshalIndent(world, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	tmp := s.statePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write world file: %w", err)
	}
	if err := os.Rename(tmp, s.statePath); err != nil {
		return fmt.Errorf("failed to replace world file: %w", err)
	}

	return nil
}

// Reset removes the world file from disk.
func (s *WorldStoreAdapter) Reset(_ context.Context) error {
	return s.locked(func() error {
		err := os.Remove(s.statePath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete world file: %w", err)
		}
		return nil
	})
}

// Ensure WorldStoreAdapter implements WorldStore
var _ usecase.WorldStore = (*WorldStoreAdapter)(nil)
