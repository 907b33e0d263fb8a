package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.HighlightThreshold != 3.60 {
		t.Errorf("HighlightThreshold = %v, want 3.60", s.HighlightThreshold)
	}
	if s.ArtistJoinSeparator != " & " {
		t.Errorf("ArtistJoinSeparator = %q, want %q", s.ArtistJoinSeparator, " & ")
	}
	if s.ChartMarkerID == "" || s.ListTableID == "" {
		t.Error("classifier markers must have defaults")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings invalid: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.PagesDir != DefaultSettings().PagesDir {
		t.Errorf("PagesDir = %q, want default %q", s.PagesDir, DefaultSettings().PagesDir)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"pages_dir": "/srv/pages"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.PagesDir != "/srv/pages" {
		t.Errorf("PagesDir = %q, want /srv/pages", s.PagesDir)
	}
	if s.HighlightThreshold != 3.60 {
		t.Errorf("HighlightThreshold = %v, want default 3.60", s.HighlightThreshold)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt settings file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := DefaultSettings()
	s.PagesDir = "/data/pages"
	s.HighlightThreshold = 3.75
	s.OpenReport = false

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.PagesDir != s.PagesDir || back.HighlightThreshold != s.HighlightThreshold || back.OpenReport != s.OpenReport {
		t.Errorf("round trip mismatch: got %+v", back)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RYM_PAGES_DIR", "/env/pages")
	t.Setenv("RYM_OUTPUT_DIR", "/env/out")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.PagesDir != "/env/pages" {
		t.Errorf("PagesDir = %q, want /env/pages", s.PagesDir)
	}
	if s.OutputDir != "/env/out" {
		t.Errorf("OutputDir = %q, want /env/out", s.OutputDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults valid", func(s *Settings) {}, false},
		{"empty pages dir", func(s *Settings) { s.PagesDir = "" }, true},
		{"empty output dir", func(s *Settings) { s.OutputDir = "" }, true},
		{"no classifier markers", func(s *Settings) { s.ChartMarkerID = ""; s.ListTableID = "" }, true},
		{"negative threshold", func(s *Settings) { s.HighlightThreshold = -1 }, true},
		{"threshold above scale", func(s *Settings) { s.HighlightThreshold = 5.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
