// Package report renders the new-release HTML report and hands it to the
// host's default browser.
//
// The report is a single self-contained document: inline styles, no
// external assets. Releases are sorted case-insensitively by artist then
// title and grouped under first-letter headings, with "#" collecting
// entries that have no artist name. Chart-sourced entries carry a rating
// badge, highlighted when the rating meets the configured threshold
// (inclusive), and a genre line when genres are known.
//
// Opening the written file is best effort. A headless host has no handler
// to open it with, and that must never fail the run; callers report the
// error and continue.
package report
