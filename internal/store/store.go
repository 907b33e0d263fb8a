package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/alexmv/rym-release-tracker/internal/model"
)

// snapshotPattern matches the dated snapshot file family albums-YYYY-MM-DD.json.
var snapshotPattern = regexp.MustCompile(`^albums-(\d{4}-\d{2}-\d{2})\.json$`)

// Store persists dated release snapshots under a single output directory.
//
// Each run writes one albums-YYYY-MM-DD.json file holding the full merged
// set of known releases. Older files are history and are never modified or
// deleted; re-running on the same date overwrites that date's file.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily on the
// first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the snapshot file path for a run date (YYYY-MM-DD).
func (s *Store) Path(date string) string {
	return filepath.Join(s.dir, "albums-"+date+".json")
}

// Latest returns the path of the most recent snapshot file, determined by
// the date embedded in the filename, never by modification time. The second
// return value is false when no snapshot exists yet.
func (s *Store) Latest() (string, bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read output directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m := snapshotPattern.FindStringSubmatch(entry.Name()); m != nil {
			dates = append(dates, m[1])
		}
	}
	if len(dates) == 0 {
		return "", false, nil
	}

	// ISO dates sort lexically, so the max date is the last element.
	sort.Strings(dates)
	return s.Path(dates[len(dates)-1]), true, nil
}

// Load reads a snapshot file into memory.
//
// A snapshot that exists but does not parse is a fatal condition for the
// run: silently discarding it would rewrite history, so the error is
// returned rather than an empty set.
func (s *Store) Load(path string) ([]model.Release, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", filepath.Base(path), err)
	}

	var releases []model.Release
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, fmt.Errorf("corrupt snapshot %s: %w", filepath.Base(path), err)
	}
	return releases, nil
}

// LoadPrior loads the most recent snapshot, or an empty set when none
// exists. The returned path is empty in the no-snapshot case.
func (s *Store) LoadPrior() ([]model.Release, string, error) {
	path, ok, err := s.Latest()
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", nil
	}
	releases, err := s.Load(path)
	if err != nil {
		return nil, "", err
	}
	return releases, path, nil
}

// Save writes releases as the snapshot for the given run date, creating the
// output directory if needed. An existing same-date file is overwritten.
func (s *Store) Save(date string, releases []model.Release) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(releases, "", "  ")
	if err != nil {
		return "", err
	}

	path := s.Path(date)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Dedupe collapses releases sharing the same identity into one canonical
// record, preserving first-seen order. When the same album appears both in
// a list and in a chart, the chart record wins: it carries the rating and
// genre data the list record lacks. Otherwise the first occurrence is kept.
//
// The second return value is the number of records removed.
func Dedupe(releases []model.Release) ([]model.Release, int) {
	index := make(map[string]int, len(releases))
	out := make([]model.Release, 0, len(releases))

	for _, r := range releases {
		key := r.Key()
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, r)
			continue
		}
		if out[at].Source != model.SourceChart && r.Source == model.SourceChart {
			out[at] = r
		}
	}

	return out, len(releases) - len(out)
}

// Diff returns the releases in current whose identity does not occur in
// prior, preserving the order of current.
func Diff(prior, current []model.Release) []model.Release {
	known := make(map[string]struct{}, len(prior))
	for _, r := range prior {
		known[r.Key()] = struct{}{}
	}

	var fresh []model.Release
	for _, r := range current {
		if _, ok := known[r.Key()]; !ok {
			fresh = append(fresh, r)
		}
	}
	return fresh
}

// Merge unions prior and current by identity. A current record replaces a
// prior record with the same identity (it carries the newest data); records
// only present in prior are retained, and brand-new records are appended in
// their current order.
func Merge(prior, current []model.Release) []model.Release {
	replacement := make(map[string]model.Release, len(current))
	for _, r := range current {
		replacement[r.Key()] = r
	}

	merged := make([]model.Release, 0, len(prior)+len(current))
	seen := make(map[string]struct{}, len(prior))
	for _, r := range prior {
		key := r.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if upd, ok := replacement[key]; ok {
			merged = append(merged, upd)
		} else {
			merged = append(merged, r)
		}
	}
	for _, r := range current {
		if _, ok := seen[r.Key()]; !ok {
			seen[r.Key()] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}
