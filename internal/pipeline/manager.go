package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/model"
	"github.com/alexmv/rym-release-tracker/internal/page"
	"github.com/alexmv/rym-release-tracker/internal/report"
	"github.com/alexmv/rym-release-tracker/internal/rym"
	"github.com/alexmv/rym-release-tracker/internal/store"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// SkippedFile records a per-file failure that did not abort the run.
type SkippedFile struct {
	Name   string
	Reason string
}

// Summary is the user-visible outcome of one run.
type Summary struct {
	// Date is the run date (YYYY-MM-DD) used for output file names.
	Date string

	// FilesProcessed counts saved pages that were loaded and extracted.
	FilesProcessed int

	// Skipped lists files that could not be used, with reasons.
	Skipped []SkippedFile

	// Extracted counts records pulled out of the processed pages, before
	// deduplication.
	Extracted int

	// DuplicatesRemoved counts records collapsed by deduplication.
	DuplicatesRemoved int

	// NewReleases holds the releases absent from the prior snapshot.
	NewReleases []model.Release

	// SnapshotPath and ReportPath are the written output files. Empty on a
	// dry run.
	SnapshotPath string
	ReportPath   string

	// ReportOpened is true when the report was handed to the host's
	// default handler.
	ReportOpened bool
}

// Manager runs the extraction pipeline: load and classify each saved page,
// extract its releases, deduplicate, diff against the prior snapshot, then
// persist the merged snapshot and render the new-release report.
//
// The run is a single sequential pass. Per-file problems are reported
// through the progress callback and skipped; only directory-level and
// snapshot-history problems abort the run.
type Manager struct {
	settings  *config.Settings
	loader    *page.Loader
	extractor *rym.Extractor
	store     *store.Store
	renderer  *report.Renderer

	onProgress func(ProgressEvent)

	// now is replaceable in tests to pin the run date.
	now func() time.Time
}

// NewManager creates a Manager for the given settings. onProgress may be
// nil when no progress output is wanted.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		loader:     page.NewLoader(settings),
		extractor:  rym.NewExtractor(settings),
		store:      store.New(settings.OutputDir),
		renderer:   report.NewRenderer(settings),
		onProgress: onProgress,
		now:        time.Now,
	}
}

// Run executes the pipeline once and returns its summary.
//
// dryRun parses, deduplicates and diffs but writes nothing and opens
// nothing, so a run can be previewed without touching the snapshot history.
//
// Fatal conditions (missing pages directory, no loadable input file at all,
// corrupt prior snapshot, unwritable output) return an error before any
// snapshot is written; everything else is contained per file.
func (m *Manager) Run(ctx context.Context, dryRun bool) (*Summary, error) {
	date := m.now().Format("2006-01-02")
	summary := &Summary{Date: date}

	files, err := m.loader.ListFiles(m.settings.PagesDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no saved pages found in %s", m.settings.PagesDir)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d saved pages in %s", len(files), m.settings.PagesDir), Level: LevelInfo})

	var extracted []model.Release
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := m.loader.LoadFile(file)
		if err != nil {
			m.skip(summary, file, err)
			continue
		}

		releases, err := m.extractor.Extract(p, date)
		if err != nil {
			m.skip(summary, file, err)
			continue
		}

		summary.FilesProcessed++
		summary.Extracted += len(releases)
		extracted = append(extracted, releases...)
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("%s: %s page, %d releases", p.Name, p.Kind, len(releases)),
			Level:   LevelVerbose,
		})
	}

	if summary.FilesProcessed == 0 {
		return nil, fmt.Errorf("no readable saved pages in %s (%d skipped)", m.settings.PagesDir, len(summary.Skipped))
	}

	deduped, removed := store.Dedupe(extracted)
	summary.DuplicatesRemoved = removed
	if removed > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Removed %d duplicate releases", removed), Level: LevelVerbose})
	}

	prior, priorPath, err := m.store.LoadPrior()
	if err != nil {
		return nil, err
	}
	if priorPath != "" {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Comparing against %s (%d known releases)", priorPath, len(prior)), Level: LevelInfo})
	} else {
		m.progress(ProgressEvent{Message: "No previous snapshot, all releases are new", Level: LevelInfo})
	}

	summary.NewReleases = store.Diff(prior, deduped)
	merged := store.Merge(prior, deduped)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%d new releases out of %d extracted", len(summary.NewReleases), len(deduped)),
		Level:   LevelInfo,
	})

	if dryRun {
		m.progress(ProgressEvent{Message: "Dry run, skipping snapshot and report", Level: LevelInfo})
		return summary, nil
	}

	snapshotPath, err := m.store.Save(date, merged)
	if err != nil {
		return nil, err
	}
	summary.SnapshotPath = snapshotPath
	m.progress(ProgressEvent{Message: fmt.Sprintf("Snapshot saved to %s", snapshotPath), Level: LevelSuccess})

	reportPath, err := m.renderer.Write(m.settings.OutputDir, date, summary.NewReleases)
	if err != nil {
		return nil, err
	}
	summary.ReportPath = reportPath
	m.progress(ProgressEvent{Message: fmt.Sprintf("Report written to %s", reportPath), Level: LevelSuccess})

	if m.settings.OpenReport {
		if err := report.Open(reportPath); err != nil {
			// Best effort: a headless host has nothing to open with.
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not open report: %v", err), Level: LevelWarning})
		} else {
			summary.ReportOpened = true
		}
	}

	return summary, nil
}

// skip records a per-file failure and surfaces it as a warning.
func (m *Manager) skip(summary *Summary, file string, err error) {
	summary.Skipped = append(summary.Skipped, SkippedFile{Name: file, Reason: err.Error()})
	m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %v", err), Level: LevelWarning})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
