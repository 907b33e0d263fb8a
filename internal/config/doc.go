// Package config handles application settings for rym-release-tracker.
//
// Settings are stored as a JSON file and loaded with defaults for any
// missing field:
//
//	settings, err := config.Load("settings.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings.ApplyEnv() // RYM_PAGES_DIR / RYM_OUTPUT_DIR overrides
//
// Besides the input and output directories, the settings carry the page
// classifier markers (chart_marker_id, list_table_id) so the detection rules
// can be adjusted without a rebuild when the site markup changes, plus the
// report highlight threshold and the separator used to join collaborating
// artists.
package config
