package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/browser"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/model"
)

// Renderer turns a new-release set into a self-contained static HTML report.
//
// Entries are sorted case-insensitively by artist then title and grouped
// under first-letter headings. Chart entries show their rating badge and
// genre line; ratings at or above the highlight threshold get the
// highlighted badge style.
type Renderer struct {
	threshold float64
}

// NewRenderer creates a Renderer using the highlight threshold from settings.
func NewRenderer(settings *config.Settings) *Renderer {
	return &Renderer{threshold: settings.HighlightThreshold}
}

// reportData is the template root.
type reportData struct {
	Date     string
	Count    int
	Sections []section
}

// section groups entries under one first-letter heading.
type section struct {
	Letter  string
	Entries []entry
}

// entry is one rendered release row.
type entry struct {
	Artist      string
	Title       string
	URL         string
	Chart       bool
	Rating      string
	RatingClass string
	Genres      string
}

// Render produces the report document for the given run date.
func (r *Renderer) Render(date string, releases []model.Release) ([]byte, error) {
	data := reportData{
		Date:     date,
		Count:    len(releases),
		Sections: r.sections(releases),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the report and writes it to new_releases-<date>.html under
// dir, creating the directory if needed. A same-date file is overwritten.
func (r *Renderer) Write(dir, date string, releases []model.Release) (string, error) {
	doc, err := r.Render(date, releases)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, "new_releases-"+date+".html")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Open asks the host's default handler to display the report.
//
// This is best effort: on a headless machine there is nothing to open, so
// callers log the returned error and move on instead of failing the run.
func Open(path string) error {
	return browser.OpenFile(path)
}

// sections sorts the releases alphabetically and groups them by the first
// letter of the artist name. Releases without an artist collect under "#".
func (r *Renderer) sections(releases []model.Release) []section {
	sorted := make([]model.Release, len(releases))
	copy(sorted, releases)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := model.Normalize(sorted[i].Artist), model.Normalize(sorted[j].Artist)
		if ai != aj {
			return ai < aj
		}
		return model.Normalize(sorted[i].Title) < model.Normalize(sorted[j].Title)
	})

	var sections []section
	for _, rel := range sorted {
		letter := firstLetter(rel.Artist)
		if len(sections) == 0 || sections[len(sections)-1].Letter != letter {
			sections = append(sections, section{Letter: letter})
		}
		last := &sections[len(sections)-1]
		last.Entries = append(last.Entries, r.entry(rel))
	}
	return sections
}

// entry builds the view row for one release, applying the highlight rule.
func (r *Renderer) entry(rel model.Release) entry {
	e := entry{
		Artist: rel.Artist,
		Title:  rel.Title,
		URL:    rel.URL,
		Chart:  rel.Source == model.SourceChart,
		Genres: strings.Join(rel.Genres, ", "),
	}
	if e.Chart {
		e.RatingClass = "rating"
		if rel.HasRating() {
			e.Rating = strconv.FormatFloat(*rel.Rating, 'f', 2, 64)
			if rel.Highlighted(r.threshold) {
				e.RatingClass = "rating rating-high"
			}
		} else {
			e.Rating = "N/A"
		}
	}
	return e
}

// firstLetter returns the upper-cased heading letter for an artist name,
// or "#" when the name is empty.
func firstLetter(artist string) string {
	for _, r := range artist {
		return string(unicode.ToUpper(r))
	}
	return "#"
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Music Releases - {{.Date}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            line-height: 1.6;
        }
        h1 {
            color: #333;
            border-bottom: 1px solid #ddd;
            padding-bottom: 10px;
        }
        ul {
            list-style-type: none;
            padding: 0;
        }
        li {
            margin-bottom: 10px;
            padding: 10px;
            background-color: #f9f9f9;
            border-radius: 5px;
        }
        a {
            color: #0066cc;
            text-decoration: none;
        }
        a:hover {
            text-decoration: underline;
        }
        .letter-heading {
            background-color: #333;
            color: white;
            padding: 5px 10px;
            margin-top: 20px;
            border-radius: 3px;
        }
        .item-main {
            margin-right: 10px;
        }
        .rating {
            display: inline-block;
            margin-left: 10px;
            background-color: #e9e9e9;
            padding: 2px 6px;
            border-radius: 3px;
            font-size: 0.9em;
        }
        .rating-high {
            background-color: #c8e6c9;
            color: #2e7d32;
            font-weight: bold;
        }
        .genres {
            font-size: 0.8em;
            color: #555;
            margin-top: 3px;
        }
        .source-type {
            display: inline-block;
            font-size: 0.8em;
            background-color: #eee;
            border-radius: 3px;
            padding: 1px 5px;
            margin-left: 5px;
        }
        .unknown {
            color: #999;
            font-style: italic;
        }
    </style>
</head>
<body>
    <h1>New Music Releases - {{.Date}}</h1>
    <p>Found {{.Count}} new releases</p>
{{- if .Sections}}
    <ul>
{{- range .Sections}}
        <li class="letter-heading">{{.Letter}}</li>
{{- range .Entries}}
        <li>
            <div>
                <span class="item-main">{{if .Artist}}{{.Artist}}{{else}}<span class="unknown">Unknown Artist</span>{{end}} - {{if .URL}}<a href="{{.URL}}" target="_blank">{{.Title}}</a>{{else}}{{.Title}}{{end}}</span>
{{- if .Chart}}
                <span class="{{.RatingClass}}">{{.Rating}}</span>
                <span class="source-type">Chart</span>
{{- else}}
                <span class="source-type">Release</span>
{{- end}}
            </div>
{{- if .Genres}}
            <div class="genres">Genres: {{.Genres}}</div>
{{- end}}
        </li>
{{- end}}
{{- end}}
    </ul>
{{- else}}
    <p>No new releases found today.</p>
{{- end}}
</body>
</html>
`))
