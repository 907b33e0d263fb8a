package model

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Artist A", "artist a"},
		{"  Artist   A  ", "artist a"},
		{"ARTIST\tA", "artist a"},
		{"artist a", "artist a"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRelease_Key(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Release
		equal bool
	}{
		{
			name:  "identical",
			a:     Release{Artist: "Artist A", Title: "Title X"},
			b:     Release{Artist: "Artist A", Title: "Title X"},
			equal: true,
		},
		{
			name:  "case and whitespace insensitive",
			a:     Release{Artist: "Artist A", Title: "Title X"},
			b:     Release{Artist: "artist  a", Title: " TITLE x "},
			equal: true,
		},
		{
			name:  "different title",
			a:     Release{Artist: "Artist A", Title: "Title X"},
			b:     Release{Artist: "Artist A", Title: "Title Y"},
			equal: false,
		},
		{
			name: "artist title boundary not confusable",
			a:    Release{Artist: "a b", Title: "c"},
			b:    Release{Artist: "a", Title: "b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Key() == tt.b.Key(); got != tt.equal {
				t.Errorf("keys %q vs %q: equal = %v, want %v", tt.a.Key(), tt.b.Key(), got, tt.equal)
			}
		})
	}
}

func TestRelease_Highlighted(t *testing.T) {
	rating := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		rating *float64
		want   bool
	}{
		{"exactly at threshold", rating(3.60), true},
		{"above threshold", rating(4.12), true},
		{"just below threshold", rating(3.59), false},
		{"absent rating", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Release{Rating: tt.rating}
			if got := r.Highlighted(3.60); got != tt.want {
				t.Errorf("Highlighted(3.60) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelease_JSON(t *testing.T) {
	rating := 3.87
	r := Release{
		Artist:    "Artist A",
		Title:     "Title X",
		URL:       "https://rateyourmusic.com/release/album/artist-a/title-x/",
		Rating:    &rating,
		Genres:    []string{"Ambient", "Drone"},
		Source:    SourceChart,
		ScrapedOn: "2026-08-25",
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Release
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Key() != r.Key() {
		t.Errorf("identity changed across JSON round trip")
	}
	if back.Rating == nil || *back.Rating != rating {
		t.Errorf("Rating = %v, want %v", back.Rating, rating)
	}

	// A list release must not serialize rating or genres at all.
	listData, err := json.Marshal(Release{Artist: "A", Title: "T", Source: SourceList})
	if err != nil {
		t.Fatalf("marshal list release: %v", err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(listData, &asMap); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	if _, ok := asMap["rating"]; ok {
		t.Error("list release serialized a rating key")
	}
	if _, ok := asMap["genres"]; ok {
		t.Error("list release serialized a genres key")
	}
	if asMap["source_type"] != "releases" {
		t.Errorf("source_type = %v, want %q", asMap["source_type"], "releases")
	}
}
