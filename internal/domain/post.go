package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by the catalog.
const DateLayout = "2006-01-02"

// Post is one blog entry in the catalog. Slug is the unique identifier and
// the sole deduplication key. LinkedInHook is an opaque promotional blob,
// carried through unchanged and omitted when absent.
type Post struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Date         string   `json:"date"`
	Featured     bool     `json:"featured"`
	Image        string   `json:"image"`
	LinkedInHook string   `json:"linkedInHook,omitempty"`
}

// ParseDate parses the post's date field. A date that does not parse as
// YYYY-MM-DD is a fatal input error for every catalog operation.
func (p *Post) ParseDate() (time.Time, error) {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("post %q: parse date %q: %w", p.Slug, p.Date, err)
	}
	return t, nil
}
