package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const fixture = `<html><body>
<table id="user_list">
  <tr><td class="main_entry first">
    <h2><a class="list_artist" href="/artist/a">Artist  A</a></h2>
    <h3><a class="list_album" href="/release/x">Title X</a></h3>
  </td></tr>
  <tr><td class="main_entry">
    <h2>Plain Artist</h2>
  </td></tr>
</table>
</body></html>`

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestFind(t *testing.T) {
	doc := parse(t, fixture)

	tests := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"by id", ByID("user_list"), true},
		{"by tag", ByTag("h2"), true},
		{"by class among multiple classes", ByClass("first"), true},
		{"by tag and class", ByTagClass("a", "list_album"), true},
		{"missing id", ByID("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(doc, tt.pred)
			if (got != nil) != tt.want {
				t.Errorf("Find = %v, want match=%v", got, tt.want)
			}
		})
	}

	if Find(nil, ByTag("a")) != nil {
		t.Error("Find on nil root must return nil")
	}
}

func TestFindAll_DocumentOrder(t *testing.T) {
	doc := parse(t, fixture)

	rows := FindAll(doc, ByTag("tr"))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	links := FindAll(doc, ByTag("a"))
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if Attr(links[0], "href") != "/artist/a" || Attr(links[1], "href") != "/release/x" {
		t.Errorf("links out of document order: %q, %q", Attr(links[0], "href"), Attr(links[1], "href"))
	}

	if got := FindAll(nil, ByTag("a")); len(got) != 0 {
		t.Errorf("FindAll on nil root = %v, want empty", got)
	}
}

func TestAttr(t *testing.T) {
	doc := parse(t, fixture)
	link := Find(doc, ByTagClass("a", "list_artist"))

	if got := Attr(link, "href"); got != "/artist/a" {
		t.Errorf("Attr(href) = %q, want /artist/a", got)
	}
	if got := Attr(link, "title"); got != "" {
		t.Errorf("Attr(missing) = %q, want empty", got)
	}
	if got := Attr(nil, "href"); got != "" {
		t.Errorf("Attr(nil) = %q, want empty", got)
	}
}

func TestText(t *testing.T) {
	doc := parse(t, fixture)

	// Whitespace inside the artist link collapses to one space.
	artist := Find(doc, ByTagClass("a", "list_artist"))
	if got := Text(artist); got != "Artist A" {
		t.Errorf("Text = %q, want %q", got, "Artist A")
	}

	// Text of a container concatenates descendants.
	entry := Find(doc, ByClass("main_entry"))
	if got := Text(entry); got != "Artist A Title X" {
		t.Errorf("Text(entry) = %q, want %q", got, "Artist A Title X")
	}

	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}
