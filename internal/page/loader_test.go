package page

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/dom"
)

const chartHTML = `<html><body>
<section id="page_charts_section_charts">
  <div class="page_charts_section_charts_item"></div>
</section>
</body></html>`

const listHTML = `<html><body>
<table id="user_list"><tr><td class="main_entry"></td></tr></table>
</body></html>`

// A chart page embedding an auxiliary table with the list marker ID.
const ambiguousHTML = `<html><body>
<section id="page_charts_section_charts"></section>
<table id="user_list"></table>
</body></html>`

func newTestLoader() *Loader {
	return NewLoader(config.DefaultSettings())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Classification(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantKind Kind
	}{
		{"chart page", chartHTML, KindChart},
		{"list page", listHTML, KindList},
		{"chart marker wins over list table", ambiguousHTML, KindChart},
		{"unrecognized page", `<html><body><p>nothing here</p></body></html>`, KindUnknown},
	}

	loader := newTestLoader()
	dir := t.TempDir()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "page.html", tt.content)

			p, err := loader.LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if p.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", p.Kind, tt.wantKind)
			}
			if p.Name != "page.html" {
				t.Errorf("Name = %q, want page.html", p.Name)
			}
			if p.Root == nil {
				t.Error("Root is nil")
			}
		})
	}
}

func TestLoadFile_MHTML(t *testing.T) {
	// A minimal Chromium-style archive: multipart/related wrapper, the HTML
	// document quoted-printable encoded, followed by an asset part.
	archive := strings.ReplaceAll(`From: <Saved by Blink>
Subject: chart snapshot
MIME-Version: 1.0
Content-Type: multipart/related; type="text/html"; boundary="----MultipartBoundary--abc123"

------MultipartBoundary--abc123
Content-Type: text/html
Content-Transfer-Encoding: quoted-printable
Content-Location: https://rateyourmusic.com/charts/top/album/2025/

<html><body><section id=3D"page_charts_section_charts"><span class=3D"ui_na=
me_locale_original">Title X</span></section></body></html>
------MultipartBoundary--abc123
Content-Type: image/png
Content-Transfer-Encoding: base64
Content-Location: https://e.snmc.io/cover.png

iVBORw0KGgo=
------MultipartBoundary--abc123--
`, "\n", "\r\n")

	loader := newTestLoader()
	path := writeFile(t, t.TempDir(), "snapshot.mhtml", archive)

	p, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if p.Kind != KindChart {
		t.Errorf("Kind = %v, want %v", p.Kind, KindChart)
	}

	// The quoted-printable soft break and =3D escapes must be undone.
	title := dom.Find(p.Root, dom.ByClass("ui_name_locale_original"))
	if got := dom.Text(title); got != "Title X" {
		t.Errorf("decoded title = %q, want %q", got, "Title X")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	loader := newTestLoader()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := loader.LoadFile(filepath.Join(dir, "absent.html")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("corrupt archive", func(t *testing.T) {
		path := writeFile(t, dir, "broken.mhtml", "this is not a mime message")
		if _, err := loader.LoadFile(path); err == nil {
			t.Error("expected error for corrupt archive")
		}
	})

	t.Run("archive without html part", func(t *testing.T) {
		archive := strings.ReplaceAll(`MIME-Version: 1.0
Content-Type: multipart/related; boundary="b"

--b
Content-Type: image/png

data
--b--
`, "\n", "\r\n")
		path := writeFile(t, dir, "assets-only.mht", archive)
		if _, err := loader.LoadFile(path); err == nil {
			t.Error("expected error for archive without html part")
		}
	})
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_chart.mhtml", chartHTML)
	writeFile(t, dir, "a_list.html", listHTML)
	writeFile(t, dir, "notes.txt", "ignore me")

	// Saved-page asset folder with a stray html file inside: must be ignored.
	assets := filepath.Join(dir, "a_list_files")
	if err := os.Mkdir(assets, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, assets, "frame.html", "<html></html>")

	files, err := newTestLoader().ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}

	want := []string{filepath.Join(dir, "a_list.html"), filepath.Join(dir, "b_chart.mhtml")}
	if len(files) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(files), files, len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListFiles_MissingDir(t *testing.T) {
	if _, err := newTestLoader().ListFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}
