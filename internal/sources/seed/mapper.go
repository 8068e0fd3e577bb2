package seed

import (
	"github.com/google/uuid"

	"github.com/youlearn/youlearn/internal/domain"
)

// Mapper converts seed entries to catalog videos.
type Mapper struct{}

// NewMapper creates a seed mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts a seed file to catalog entries, applying the same
// validation rules as a manual add. Invalid entries are skipped, not
// fatal; the skipped count is returned for logging.
func (m *Mapper) Map(f *File) (videos []domain.Video, skipped int) {
	videos = make([]domain.Video, 0, len(f.Videos))

	for _, e := range f.Videos {
		if !domain.ValidateEntry(e.Title, e.Description, e.URL).Valid() {
			skipped++
			continue
		}
		videos = append(videos, domain.Video{
			ID:          uuid.NewString(),
			Suggestion:  e.Suggestion,
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
		})
	}

	return videos, skipped
}
