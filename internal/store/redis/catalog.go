package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/youlearn/youlearn/internal/domain"
)

// Store persists the catalog in Redis as a single JSON value.
//
// Every mutation replaces the value wholesale; there are no partial
// updates and no schema versioning. The value round-trips losslessly,
// including the nil/null thumbnails distinction.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis catalog store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Load reads the catalog snapshot.
// An absent key yields an empty catalog, not an error.
func (s *Store) Load(ctx context.Context) ([]domain.Video, error) {
	data, err := s.client.Get(ctx, CatalogKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Video{}, nil
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var videos []domain.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if videos == nil {
		videos = []domain.Video{}
	}

	return videos, nil
}

// Save replaces the stored catalog with the given ordered sequence.
// No TTL: catalog entries are durable until removed.
func (s *Store) Save(ctx context.Context, videos []domain.Video) error {
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := s.client.Set(ctx, CatalogKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	return nil
}

// Clear removes the catalog snapshot entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, CatalogKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	return nil
}
