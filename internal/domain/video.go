package domain

// Video represents a saved catalog entry referencing an external
// learning video.
//
// It is NOT tied to Redis, the YouTube API or any transport shape.
// Entries are immutable once created; the catalog replaces them
// wholesale rather than patching fields in place.
//
// A Video is uniquely identified by its ID within the catalog.
type Video struct {
	// ID is the canonical unique identifier, generated at creation
	// time and never reused.
	ID string `json:"id"`

	// Suggestion records the free-text search query that produced
	// this entry. Provenance only, never validated.
	Suggestion string `json:"suggestion,omitempty"`

	// Title is the display title. Required, non-empty after trimming.
	Title string `json:"title"`

	// Description is a short summary of what the video teaches.
	// Required, non-empty after trimming.
	Description string `json:"description"`

	// URL is the canonical playable reference. Must match a
	// recognized YouTube URL pattern.
	URL string `json:"url"`

	// Thumbnails is the image-reference set returned by the metadata
	// service. Nil for manually-entered videos; the nil/null state is
	// preserved across persistence round-trips.
	Thumbnails *Thumbnails `json:"thumbnails"`
}

// Thumbnails mirrors the YouTube snippet thumbnail set.
type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

// Thumbnail is a single image reference.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
