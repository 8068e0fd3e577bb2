package catalog

import (
	"errors"
	"sync"

	"github.com/youlearn/youlearn/internal/domain"
)

// ErrNotInCatalog is returned when selecting an id that is not a member
// of the catalog's current snapshot.
var ErrNotInCatalog = errors.New("catalog: entry not in catalog")

// FallbackPolicy decides what Current returns when no explicit
// selection resolves to a catalog member.
type FallbackPolicy string

const (
	// FallbackFirst falls back to the first entry in the catalog,
	// or the placeholder when the catalog is empty.
	FallbackFirst FallbackPolicy = "first"

	// FallbackPlaceholder always falls back to the fixed placeholder.
	FallbackPlaceholder FallbackPolicy = "placeholder"
)

// Selection tracks which single catalog entry is active for playback.
//
// It holds an id into the catalog, never a copy, so catalog mutations
// are reflected immediately. Deleting the active entry can never leave
// the playback widget without an entry: Current always resolves to some
// member of the remaining catalog or to the designated default.
type Selection struct {
	mu          sync.RWMutex
	catalog     *Catalog
	policy      FallbackPolicy
	placeholder domain.Video
	activeID    string
}

// NewSelection creates a selection controller over the given catalog.
// The placeholder is the designated default for the empty-catalog state.
func NewSelection(c *Catalog, policy FallbackPolicy, placeholder domain.Video) *Selection {
	if policy != FallbackFirst {
		policy = FallbackPlaceholder
	}
	return &Selection{
		catalog:     c,
		policy:      policy,
		placeholder: placeholder,
	}
}

// Select sets the active entry. The target must be a member of the
// catalog's current snapshot; there is no other validation.
func (s *Selection) Select(id string) error {
	if _, ok := s.catalog.Get(id); !ok {
		return ErrNotInCatalog
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = id
	return nil
}

// Current returns the active entry, substituting the policy default
// when the previously active id is no longer in the catalog.
func (s *Selection) Current() domain.Video {
	s.mu.RLock()
	activeID := s.activeID
	s.mu.RUnlock()

	if activeID != "" {
		if v, ok := s.catalog.Get(activeID); ok {
			return v
		}
	}

	if s.policy == FallbackFirst {
		if entries := s.catalog.List(); len(entries) > 0 {
			return entries[0]
		}
	}

	return s.placeholder
}
