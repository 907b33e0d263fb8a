// Package pipeline orchestrates one full tracking run.
//
// A run is a linear, single-threaded pass:
//
//	saved pages → load+classify → extract → dedupe → diff prior snapshot
//	            → merge → save snapshot → render report → open report
//
// The Manager threads all run state through explicitly; nothing is kept in
// package-level variables, so runs are independently testable.
//
// # Error taxonomy
//
//   - Per-file (recoverable): unreadable, undecodable or unclassifiable
//     saved pages are skipped with a warning and counted in the Summary.
//   - Fatal: missing pages directory, not a single loadable page, a corrupt
//     prior snapshot, or an unwritable output directory abort the run
//     before any snapshot is written.
//   - Best effort: failing to open the finished report in a browser is
//     only a warning.
//
// Progress is streamed through a ProgressEvent callback in the same way the
// frontends expect: the CLI prints prefixed lines, the TUI feeds them into
// its log view.
package pipeline
