package model

import (
	"strings"
)

// SourceType identifies the kind of saved page a release was extracted from.
//
// The values match the source_type strings used in the snapshot JSON files,
// so older snapshots remain loadable.
type SourceType string

const (
	// SourceList marks a release extracted from a user list page.
	// List pages carry only artist and title information.
	SourceList SourceType = "releases"

	// SourceChart marks a release extracted from a chart page.
	// Chart pages additionally carry a rating and genre tags.
	SourceChart SourceType = "chart"
)

// Release represents one album extracted from a saved RateYourMusic page.
//
// Artist and Title are always present. Rating and Genres are only populated
// for chart-sourced releases; a missing or unparseable rating is represented
// as a nil pointer, never as zero.
//
// Example:
//
//	r := model.Release{
//	    Artist: "Boards of Canada",
//	    Title:  "Music Has the Right to Children",
//	    Source: model.SourceChart,
//	}
//	key := r.Key() // "boards of canada\x00music has the right to children"
type Release struct {
	// Artist is the album artist. Collaborating artists are joined into a
	// single string by the extractor using a consistent separator.
	Artist string `json:"artist"`

	// Title is the album title.
	Title string `json:"title"`

	// URL is the absolute link to the album page, if one was found.
	URL string `json:"url,omitempty"`

	// Rating is the chart average rating. Nil when the release came from a
	// list page or the rating could not be parsed.
	Rating *float64 `json:"rating,omitempty"`

	// Genres holds the primary genre tags in document order. Only populated
	// for chart-sourced releases and may be empty even then.
	Genres []string `json:"genres,omitempty"`

	// Source records which page type the release was extracted from.
	Source SourceType `json:"source_type"`

	// ScrapedOn is the run date (YYYY-MM-DD) the release was first extracted.
	ScrapedOn string `json:"scraped_on,omitempty"`

	// SourceFile is the name of the saved page file the release came from.
	SourceFile string `json:"source_file,omitempty"`
}

// Key returns the deduplication identity of the release.
//
// The identity is the normalized (artist, title) pair: both fields are
// lowercased, have runs of whitespace collapsed to a single space, and are
// trimmed, then joined with a NUL byte so that artist/title boundaries can
// never be confused.
//
// Two releases with equal keys are considered the same album regardless of
// case or spacing differences in the source pages.
func (r Release) Key() string {
	return Normalize(r.Artist) + "\x00" + Normalize(r.Title)
}

// HasRating reports whether the release carries a parsed rating.
func (r Release) HasRating() bool {
	return r.Rating != nil
}

// Highlighted reports whether the release rating meets the highlight
// threshold. The threshold is inclusive: a rating exactly equal to it counts.
// Releases without a rating are never highlighted.
func (r Release) Highlighted(threshold float64) bool {
	return r.Rating != nil && *r.Rating >= threshold
}

// Normalize lowercases s, collapses runs of whitespace to single spaces and
// trims the result. It is the field normalization used by Release.Key.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
