package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/logger"
)

// ErrDuplicateID is returned when an appended entry reuses an existing id.
var ErrDuplicateID = errors.New("catalog: duplicate entry id")

// Catalog owns the ordered collection of saved videos.
//
// Insertion order is display order; there is no reordering and no
// duplicate ids. All operations are synchronous from the caller's point
// of view: the in-memory sequence is mutated and the snapshot written
// before the call returns. A failed snapshot write degrades the session
// to memory-only rather than failing the mutation; losing durability is
// preferred over failing the application.
type Catalog struct {
	mu       sync.RWMutex
	entries  []domain.Video
	snapshot Snapshot
	logger   logger.Logger
	degraded bool
}

// New creates a catalog backed by the given snapshot store.
func New(snapshot Snapshot, log logger.Logger) *Catalog {
	return &Catalog{
		entries:  []domain.Video{},
		snapshot: snapshot,
		logger:   log,
	}
}

// Load reads the persisted catalog into memory.
// An unreadable or unparsable snapshot leaves the catalog empty for the
// session and marks it degraded; it never fails startup.
func (c *Catalog) Load(ctx context.Context) error {
	videos, err := c.snapshot.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("catalog snapshot unreadable, starting with empty in-memory catalog",
			logger.Error(err))
		c.entries = []domain.Video{}
		c.degraded = true
		return nil
	}

	c.entries = videos
	c.degraded = false
	c.logger.Info("catalog loaded",
		logger.Int("entries", len(videos)))
	return nil
}

// Append adds an entry to the end of the catalog and persists it.
func (c *Catalog) Append(ctx context.Context, v domain.Video) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.entries {
		if existing.ID == v.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, v.ID)
		}
	}

	c.entries = append(c.entries, v)
	c.persistLocked(ctx)
	return nil
}

// RemoveByID deletes the matching entry if present.
// Absent ids are a no-op, not an error.
func (c *Catalog) RemoveByID(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, v := range c.entries {
		if v.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.persistLocked(ctx)
			return
		}
	}
}

// List returns the current ordered sequence as a copy.
func (c *Catalog) List() []domain.Video {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Video, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get retrieves an entry by id.
func (c *Catalog) Get(id string) (domain.Video, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, v := range c.entries {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Video{}, false
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear removes every entry and the persisted snapshot.
// Not exposed in the UI, but safe to call at any time.
func (c *Catalog) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = []domain.Video{}
	if err := c.snapshot.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear catalog snapshot, session is memory-only",
			logger.Error(err))
		c.degraded = true
	}
	return nil
}

// Degraded reports whether the session lost durability (snapshot
// unreadable at load or a write failed since).
func (c *Catalog) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.degraded
}

// persistLocked writes the current sequence to the snapshot.
// Callers must hold the write lock.
func (c *Catalog) persistLocked(ctx context.Context) {
	if err := c.snapshot.Save(ctx, c.entries); err != nil {
		c.logger.Warn("failed to persist catalog, session is memory-only",
			logger.Int("entries", len(c.entries)),
			logger.Error(err))
		c.degraded = true
		return
	}
	c.degraded = false
}
