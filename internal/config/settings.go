package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Settings holds all configuration options.
type Settings struct {
	// PagesDir is the directory containing manually saved pages
	// (.html/.htm documents or .mhtml/.mht web archives).
	PagesDir string `json:"pages_dir"`

	// OutputDir receives the dated snapshot and report files.
	OutputDir string `json:"output_dir"`

	// SiteBaseURL is prepended to relative album links found in saved pages.
	SiteBaseURL string `json:"site_base_url"`

	// ArtistJoinSeparator joins collaborating artist names into the single
	// artist string stored on a release.
	ArtistJoinSeparator string `json:"artist_join_separator"`

	// HighlightThreshold is the inclusive minimum rating for the report
	// highlight style.
	HighlightThreshold float64 `json:"highlight_threshold"`

	// ChartMarkerID is the element ID whose presence classifies a saved
	// page as a chart page.
	ChartMarkerID string `json:"chart_marker_id"`

	// ListTableID is the table ID whose presence classifies a saved page
	// as a list page. The chart marker takes precedence when both appear.
	ListTableID string `json:"list_table_id"`

	// OpenReport controls whether the generated report is opened with the
	// host's default handler after a run.
	OpenReport bool `json:"open_report"`
}

// DefaultSettings returns settings with default values.
//
// The defaults mirror a local tracking setup: pages saved under
// "saved_pages", outputs under "files", and the selectors RateYourMusic
// list and chart pages are known to use.
func DefaultSettings() *Settings {
	return &Settings{
		PagesDir:            "saved_pages",
		OutputDir:           "files",
		SiteBaseURL:         "https://rateyourmusic.com",
		ArtistJoinSeparator: " & ",
		HighlightThreshold:  3.60,
		ChartMarkerID:       "page_charts_section_charts",
		ListTableID:         "user_list",
		OpenReport:          true,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so a first run needs
// no configuration. Fields absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays environment variables onto the settings.
//
// A .env file in the working directory is loaded first if present; real
// environment variables win over it. Recognized variables:
//
//	RYM_PAGES_DIR   overrides PagesDir
//	RYM_OUTPUT_DIR  overrides OutputDir
func (s *Settings) ApplyEnv() {
	// Ignore the error: no .env file simply means system env vars only.
	_ = godotenv.Load()

	s.PagesDir = getEnv("RYM_PAGES_DIR", s.PagesDir)
	s.OutputDir = getEnv("RYM_OUTPUT_DIR", s.OutputDir)
}

// Validate reports configuration errors that would make a run meaningless.
func (s *Settings) Validate() error {
	if s.PagesDir == "" {
		return fmt.Errorf("pages_dir must not be empty")
	}
	if s.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if s.ChartMarkerID == "" && s.ListTableID == "" {
		return fmt.Errorf("at least one of chart_marker_id and list_table_id must be set")
	}
	if s.HighlightThreshold < 0 || s.HighlightThreshold > 5 {
		return fmt.Errorf("highlight_threshold %v outside the 0-5 rating scale", s.HighlightThreshold)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
