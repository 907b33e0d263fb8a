// Package model defines the core data structures shared by the
// rym-release-tracker pipeline.
//
// # Release
//
// Release represents one album extracted from a saved page:
//
//	r := model.Release{
//	    Artist: "Autechre",
//	    Title:  "Tri Repetae",
//	    Source: model.SourceList,
//	}
//
// # Identity
//
// Deduplication and new-release detection both compare releases by Key(),
// the case- and whitespace-insensitive (artist, title) pair:
//
//	a := model.Release{Artist: "Artist A", Title: "Title X"}
//	b := model.Release{Artist: "artist  a", Title: " title x "}
//	a.Key() == b.Key() // true
//
// # Ratings
//
// Chart pages carry an average rating per album. The rating is optional and
// stored as *float64; the Highlighted method applies the inclusive report
// highlight threshold.
package model
