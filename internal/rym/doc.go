// Package rym extracts album releases from classified RateYourMusic pages.
//
// The Extractor branches on the page kind reported by the loader:
//
//   - List pages (table#user_list): each row's td.main_entry yields an
//     artist/title pair. Rows listing several collaborating artists are
//     collapsed into a single artist string with a configurable separator.
//   - Chart pages (page_charts_section_charts items): each item additionally
//     yields the average rating (parsed to a decimal, absent when
//     unparseable) and the primary genre tags in document order.
//
// Extraction is lenient: rows or items with missing sub-elements are skipped
// or left with absent fields. A single malformed entry never fails its file,
// and output preserves document order; alphabetical ordering only happens
// later in the report renderer.
package rym
