// Package store manages the dated JSON snapshot history and the set
// operations the pipeline performs against it.
//
// # Snapshot files
//
// All known releases as of a run are persisted to albums-YYYY-MM-DD.json in
// the output directory. Prior files are never mutated or deleted; they are
// the run history. The most recent snapshot is located by parsing filename
// dates, so restored backups with fresh modification times cannot confuse
// the selection.
//
// # Set operations
//
// Dedupe, Diff and Merge all compare releases by model.Release.Key, the
// normalized (artist, title) identity:
//
//	deduped, removed := store.Dedupe(extracted)
//	fresh := store.Diff(prior, deduped)   // the new-release set
//	merged := store.Merge(prior, deduped) // the next snapshot
//
// Dedupe prefers chart-sourced records over list-sourced ones for the same
// album, so rating and genre data survives the collapse.
//
// # Failure semantics
//
// A prior snapshot that exists but fails to parse is reported as an error
// and aborts the run; treating it as empty would silently discard history
// and mark every known album as new again.
package store
