package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/youlearn/youlearn/internal/domain"
)

var placeholder = domain.Video{
	ID:          "placeholder",
	Title:       "Welcome",
	Description: "Pick a video from your catalog",
	URL:         "https://www.youtube.com/watch?v=ly6YKz9UfQ4",
}

func TestSelectAndCurrent(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemorySnapshot(), testLogger())
	s := NewSelection(c, FallbackPlaceholder, placeholder)

	_ = c.Append(ctx, testVideo("a", "first"))
	_ = c.Append(ctx, testVideo("b", "second"))

	if err := s.Select("b"); err != nil {
		t.Fatalf("Select(b) failed: %v", err)
	}
	if got := s.Current(); got.ID != "b" {
		t.Errorf("Current() = %s, want b", got.ID)
	}

	if err := s.Select("nope"); !errors.Is(err, ErrNotInCatalog) {
		t.Errorf("Select(nope) = %v, want ErrNotInCatalog", err)
	}
	// Failed select must not change the active entry.
	if got := s.Current(); got.ID != "b" {
		t.Errorf("Current() = %s after failed select, want b", got.ID)
	}
}

func TestCurrentEmptyCatalog(t *testing.T) {
	c := New(NewMemorySnapshot(), testLogger())

	tests := []struct {
		name   string
		policy FallbackPolicy
	}{
		{name: "placeholder policy", policy: FallbackPlaceholder},
		{name: "first policy falls back to placeholder when empty", policy: FallbackFirst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(c, tt.policy, placeholder)
			if got := s.Current(); got.ID != placeholder.ID {
				t.Errorf("Current() = %s, want placeholder", got.ID)
			}
		})
	}
}

func TestDeleteActiveFallsBack(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		policy FallbackPolicy
		wantID string
	}{
		{name: "first policy picks remaining head", policy: FallbackFirst, wantID: "a"},
		{name: "placeholder policy picks sentinel", policy: FallbackPlaceholder, wantID: placeholder.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(NewMemorySnapshot(), testLogger())
			s := NewSelection(c, tt.policy, placeholder)

			_ = c.Append(ctx, testVideo("a", "first"))
			_ = c.Append(ctx, testVideo("b", "second"))
			if err := s.Select("b"); err != nil {
				t.Fatalf("Select(b) failed: %v", err)
			}

			c.RemoveByID(ctx, "b")

			got := s.Current()
			if got.ID != tt.wantID {
				t.Errorf("Current() = %s after deleting active entry, want %s", got.ID, tt.wantID)
			}
			// Never a dangling reference to the deleted entry.
			if got.ID == "b" {
				t.Error("Current() returned the deleted entry")
			}
		})
	}
}

func TestReselectAfterDelete(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemorySnapshot(), testLogger())
	s := NewSelection(c, FallbackFirst, placeholder)

	_ = c.Append(ctx, testVideo("a", "first"))
	_ = c.Append(ctx, testVideo("b", "second"))
	_ = s.Select("a")

	c.RemoveByID(ctx, "a")
	if err := s.Select("b"); err != nil {
		t.Fatalf("Select(b) after delete failed: %v", err)
	}
	if got := s.Current(); got.ID != "b" {
		t.Errorf("Current() = %s, want b", got.ID)
	}
}
