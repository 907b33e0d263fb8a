package page

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/dom"
)

// Kind classifies a saved page by its structure.
type Kind int

const (
	// KindUnknown means neither classifier marker was found in the page.
	KindUnknown Kind = iota

	// KindList is a user list page: artist/title rows, no ratings.
	KindList

	// KindChart is a chart page: items carrying ratings and genre tags.
	KindChart
)

// String returns a short name for the kind, used in progress output.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindChart:
		return "chart"
	default:
		return "unknown"
	}
}

// Page is one loaded and classified saved page.
type Page struct {
	// Name is the base name of the source file.
	Name string

	// Kind is the detected page classification.
	Kind Kind

	// Root is the parsed document tree.
	Root *html.Node
}

// Loader reads saved page files from disk and classifies them.
//
// Two on-disk formats are supported: plain HTML documents (.html/.htm) and
// MHTML web archives (.mhtml/.mht) as produced by "save page" in
// Chromium-based browsers. Archives are unwrapped to their HTML part before
// parsing, so both formats yield the same document tree.
type Loader struct {
	chartMarkerID string
	listTableID   string
}

// NewLoader creates a Loader using the classifier markers from settings.
func NewLoader(settings *config.Settings) *Loader {
	return &Loader{
		chartMarkerID: settings.ChartMarkerID,
		listTableID:   settings.ListTableID,
	}
}

// ListFiles returns the loadable page files directly under dir, sorted by
// name. Subdirectories (saved-page asset folders) and files with other
// extensions are ignored.
//
// An unreadable directory is an error; an empty result is not.
func (l *Loader) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pages directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".html", ".htm", ".mhtml", ".mht":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile reads, decodes and classifies a single saved page file.
//
// Returns an error when the file cannot be read, an archive cannot be
// unwrapped, or the markup cannot be parsed. Callers treat these as
// per-file failures: the file is skipped and the run continues.
func (l *Loader) LoadFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var root *html.Node
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mhtml", ".mht":
		markup, err := decodeMHTML(f)
		if err != nil {
			return nil, fmt.Errorf("decode archive %s: %w", filepath.Base(path), err)
		}
		root, err = html.Parse(strings.NewReader(markup))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	default:
		root, err = html.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	}

	return &Page{
		Name: filepath.Base(path),
		Kind: l.classify(root),
		Root: root,
	}, nil
}

// classify applies the structural detection rules. The chart marker wins
// when both markers appear, since chart pages can embed auxiliary tables.
func (l *Loader) classify(root *html.Node) Kind {
	if l.chartMarkerID != "" && dom.Find(root, dom.ByID(l.chartMarkerID)) != nil {
		return KindChart
	}
	if l.listTableID != "" {
		listTable := func(n *html.Node) bool {
			return dom.ByTag("table")(n) && dom.Attr(n, "id") == l.listTableID
		}
		if dom.Find(root, listTable) != nil {
			return KindList
		}
	}
	return KindUnknown
}
