// Package draft holds the transient entry under construction and the
// search-assist pipeline that pre-fills it.
package draft

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/youlearn/youlearn/internal/catalog"
	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/logger"
	"github.com/youlearn/youlearn/internal/search"
)

// State is the draft lifecycle state.
type State string

const (
	// StateEmpty means no suggestion has populated the draft; the user
	// may type all fields manually.
	StateEmpty State = "empty"
	// StateSearching means a debounced query is outstanding.
	StateSearching State = "searching"
	// StateSuggested means a suggestion has been merged in; every
	// field remains freely editable.
	StateSuggested State = "suggested"
	// StateSubmitting means the validator passed and the commit to the
	// catalog is in flight.
	StateSubmitting State = "submitting"
)

// Searcher produces a suggestion for free text, or nil when nothing
// usable matched.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Suggestion, error)
}

// ValidationError carries field-scoped violations from a rejected submit.
type ValidationError struct {
	Fields domain.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft is invalid: %d field(s) rejected", len(e.Fields))
}

// Patch is a partial field update. Nil pointers leave fields untouched.
type Patch struct {
	Suggestion  *string `json:"suggestion,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

// View is a read-only snapshot of the draft for rendering.
type View struct {
	State       State              `json:"state"`
	Suggestion  string             `json:"suggestion"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Thumbnails  *domain.Thumbnails `json:"thumbnails"`
	Loading     bool               `json:"loading"`
	Errors      domain.FieldErrors `json:"errors"`
}

// Controller exclusively owns the in-progress draft.
//
// Edits to the suggestion text run through a debouncer so that only the
// last keystroke of a burst queries the metadata service, and a
// generation counter guarantees that only the latest debounce window's
// result ever updates the draft. A suggestion that lands overwrites
// title, description, url and thumbnails even if the user already
// edited them: the suggestion field is explicitly the auto-fill
// trigger, and that destructive merge is intended behavior.
type Controller struct {
	mu          sync.Mutex
	state       State
	suggestion  string
	title       string
	description string
	url         string
	thumbnails  *domain.Thumbnails
	errors      domain.FieldErrors
	loading     bool
	merged      bool
	gen         uint64

	debouncer     *search.Debouncer
	searcher      Searcher
	catalog       *catalog.Catalog
	searchTimeout time.Duration
	logger        logger.Logger
}

// NewController creates a draft controller in the Empty state.
func NewController(searcher Searcher, cat *catalog.Catalog, debounce, searchTimeout time.Duration, log logger.Logger) *Controller {
	return &Controller{
		state:         StateEmpty,
		errors:        domain.FieldErrors{},
		debouncer:     search.NewDebouncer(debounce),
		searcher:      searcher,
		catalog:       cat,
		searchTimeout: searchTimeout,
		logger:        log,
	}
}

// Apply updates the draft's fields and re-runs validation, so the
// caller can render inline errors live. A change to the suggestion text
// supersedes any pending or in-flight search and, unless the text is
// empty, schedules a new debounced query.
func (dc *Controller) Apply(p Patch) View {
	dc.mu.Lock()

	if p.Title != nil {
		dc.title = *p.Title
	}
	if p.Description != nil {
		dc.description = *p.Description
	}
	if p.URL != nil {
		dc.url = *p.URL
	}

	var searchText string
	trigger := false
	if p.Suggestion != nil {
		dc.suggestion = *p.Suggestion
		dc.gen++ // a newer keystroke invalidates the previous window
		dc.loading = false
		if strings.TrimSpace(dc.suggestion) != "" {
			searchText = dc.suggestion
			trigger = true
			dc.state = StateSearching
		} else if dc.state == StateSearching {
			dc.state = dc.settledStateLocked()
		}
	}

	dc.errors = domain.ValidateEntry(dc.title, dc.description, dc.url)
	gen := dc.gen
	view := dc.viewLocked()
	dc.mu.Unlock()

	if trigger {
		dc.debouncer.Trigger(func() { dc.runSearch(gen, searchText) })
	}
	return view
}

// View returns the current draft snapshot.
func (dc *Controller) View() View {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	return dc.viewLocked()
}

// Submit validates the draft and, if it passes, commits a fresh entry
// to the catalog and resets the draft. An invalid draft is a no-op and
// returns a ValidationError; errors remain visible on the draft.
func (dc *Controller) Submit(ctx context.Context) (domain.Video, error) {
	dc.mu.Lock()
	errs := domain.ValidateEntry(dc.title, dc.description, dc.url)
	if !errs.Valid() {
		dc.errors = errs
		dc.mu.Unlock()
		return domain.Video{}, &ValidationError{Fields: errs}
	}

	dc.state = StateSubmitting
	v := domain.Video{
		ID:          uuid.NewString(),
		Suggestion:  dc.suggestion,
		Title:       dc.title,
		Description: dc.description,
		URL:         dc.url,
		Thumbnails:  dc.thumbnails,
	}
	dc.mu.Unlock()

	if err := dc.catalog.Append(ctx, v); err != nil {
		dc.mu.Lock()
		dc.state = dc.settledStateLocked()
		dc.mu.Unlock()
		return domain.Video{}, fmt.Errorf("failed to commit draft: %w", err)
	}

	dc.logger.Info("draft committed",
		logger.String("id", v.ID),
		logger.String("title", v.Title))
	dc.reset()
	return v, nil
}

// Cancel discards the draft without committing anything.
func (dc *Controller) Cancel() {
	dc.reset()
}

// runSearch is the debounced tail of a suggestion edit. It performs the
// outbound query and merges the result, unless a newer window
// superseded this one in the meantime.
func (dc *Controller) runSearch(gen uint64, text string) {
	dc.mu.Lock()
	if gen != dc.gen {
		dc.mu.Unlock()
		return
	}
	dc.loading = true
	dc.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), dc.searchTimeout)
	defer cancel()
	sug, err := dc.searcher.Search(ctx, text)

	dc.mu.Lock()
	defer dc.mu.Unlock()

	if gen != dc.gen {
		// Stale window: the result is discarded and the newer window
		// owns the loading flag.
		return
	}
	dc.loading = false

	if err != nil || sug == nil {
		if err != nil {
			dc.logger.Debug("search assist failed, draft left unchanged",
				logger.String("query", text),
				logger.Error(err))
		}
		dc.state = dc.settledStateLocked()
		return
	}

	// Destructive merge: the suggestion overwrites any manual edits.
	dc.title = sug.Title
	dc.description = sug.Description
	dc.url = sug.URL
	dc.thumbnails = sug.Thumbnails
	dc.merged = true
	dc.state = StateSuggested
	dc.errors = domain.ValidateEntry(dc.title, dc.description, dc.url)
}

func (dc *Controller) reset() {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.gen++ // invalidate any in-flight window
	dc.debouncer.Stop()
	dc.state = StateEmpty
	dc.suggestion = ""
	dc.title = ""
	dc.description = ""
	dc.url = ""
	dc.thumbnails = nil
	dc.errors = domain.FieldErrors{}
	dc.loading = false
	dc.merged = false
}

func (dc *Controller) settledStateLocked() State {
	if dc.merged {
		return StateSuggested
	}
	return StateEmpty
}

func (dc *Controller) viewLocked() View {
	errs := make(domain.FieldErrors, len(dc.errors))
	for k, v := range dc.errors {
		errs[k] = v
	}
	return View{
		State:       dc.state,
		Suggestion:  dc.suggestion,
		Title:       dc.title,
		Description: dc.description,
		URL:         dc.url,
		Thumbnails:  dc.thumbnails,
		Loading:     dc.loading,
		Errors:      errs,
	}
}
