// Package page loads and classifies locally saved pages.
//
// # Formats
//
// A saved page is either a plain HTML document (.html/.htm) or an MHTML web
// archive (.mhtml/.mht). Archives are MIME multipart/related files; the
// loader unwraps the first text/html part, decoding its transfer encoding,
// and parses it like a plain document. Asset subfolders created by browsers
// next to saved pages are skipped during directory listing.
//
// # Classification
//
// Whether a page is a chart or a list is detected from structural cues,
// both configurable through config.Settings:
//
//  1. An element with ID ChartMarkerID present → chart page.
//  2. Otherwise a <table> with ID ListTableID present → list page.
//  3. Otherwise the page is unrecognized and skipped with a warning.
//
// The chart marker is checked first because chart pages can embed
// auxiliary tables that would otherwise shadow the detection. Given the
// same document and settings the classification is deterministic.
//
// # Failure handling
//
// Unreadable or unparseable files return errors the pipeline treats as
// per-file failures: the file is skipped, a warning is surfaced, and the
// run continues with the remaining files.
package page
