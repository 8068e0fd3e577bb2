package catalog

import (
	"context"
	"sync"

	"github.com/youlearn/youlearn/internal/domain"
)

// Snapshot is the durable key-value substrate behind the catalog:
// one logical value holding the whole ordered sequence, replaced
// wholesale on every mutation.
type Snapshot interface {
	Load(ctx context.Context) ([]domain.Video, error)
	Save(ctx context.Context, videos []domain.Video) error
	Clear(ctx context.Context) error
}

// MemorySnapshot keeps the catalog in process memory only.
// It backs the degraded session when Redis is unavailable, and tests.
type MemorySnapshot struct {
	mu     sync.Mutex
	videos []domain.Video
}

// NewMemorySnapshot creates an empty in-memory snapshot.
func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{}
}

// Load returns the stored sequence.
func (m *MemorySnapshot) Load(ctx context.Context) ([]domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Video, len(m.videos))
	copy(out, m.videos)
	return out, nil
}

// Save replaces the stored sequence.
func (m *MemorySnapshot) Save(ctx context.Context, videos []domain.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.videos = make([]domain.Video, len(videos))
	copy(m.videos, videos)
	return nil
}

// Clear drops the stored sequence.
func (m *MemorySnapshot) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.videos = nil
	return nil
}
