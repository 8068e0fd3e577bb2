package domain

import (
	"regexp"
	"strings"
)

// videoURLPattern accepts YouTube video URLs with an optional scheme.
// Host tokens are matched case-sensitively.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.youtube\.com|youtu\.be)/.+$`)

// Violation messages surfaced inline next to the offending field.
const (
	MsgTitleRequired       = "Enter title"
	MsgDescriptionRequired = "Enter description"
	MsgInvalidURL          = "Must be a valid YouTube video URL"
)

// FieldErrors maps a field name to a human-readable violation message.
// An empty map means the candidate is valid.
type FieldErrors map[string]string

// Valid reports whether no field violated a rule.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// ValidateEntry checks a candidate entry's required fields.
//
// It is a pure function and runs on every field change, so callers can
// render errors live rather than only on submit. Existence of the video
// is not checked; only the URL shape is.
func ValidateEntry(title, description, url string) FieldErrors {
	errs := make(FieldErrors)

	if strings.TrimSpace(title) == "" {
		errs["title"] = MsgTitleRequired
	}
	if strings.TrimSpace(description) == "" {
		errs["description"] = MsgDescriptionRequired
	}
	if !videoURLPattern.MatchString(url) {
		errs["url"] = MsgInvalidURL
	}

	return errs
}

// ValidateVideo applies the entry rules to a full Video value.
func ValidateVideo(v Video) FieldErrors {
	return ValidateEntry(v.Title, v.Description, v.URL)
}
