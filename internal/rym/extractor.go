package rym

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/dom"
	"github.com/alexmv/rym-release-tracker/internal/model"
	"github.com/alexmv/rym-release-tracker/internal/page"
)

// Extractor pulls album releases out of classified saved pages.
//
// Field extraction branches on the page kind: list pages yield artist/title
// pairs only, chart pages additionally yield a rating and genre tags. The
// extraction rules mirror the markup RateYourMusic uses for each page type
// and tolerate missing sub-elements: an absent rating or genre block leaves
// the field empty rather than failing the page.
//
// Example:
//
//	extractor := rym.NewExtractor(settings)
//	p, _ := loader.LoadFile("saved_pages/chart_1.mhtml")
//	releases, err := extractor.Extract(p, "2026-08-25")
type Extractor struct {
	baseURL string
	joinSep string
}

// NewExtractor creates an Extractor using the site base URL and artist join
// separator from settings.
func NewExtractor(settings *config.Settings) *Extractor {
	return &Extractor{
		baseURL: strings.TrimRight(settings.SiteBaseURL, "/"),
		joinSep: settings.ArtistJoinSeparator,
	}
}

// Extract returns the releases found in p, in document order.
//
// scrapedOn is the run date stamped onto every extracted release. Pages of
// unknown kind return an error so the caller can skip them with a warning.
func (e *Extractor) Extract(p *page.Page, scrapedOn string) ([]model.Release, error) {
	switch p.Kind {
	case page.KindList:
		return e.extractList(p, scrapedOn), nil
	case page.KindChart:
		return e.extractChart(p, scrapedOn), nil
	default:
		return nil, fmt.Errorf("%s: unrecognized page structure", p.Name)
	}
}

// extractList walks the user list table.
//
// Each data row has a td.main_entry holding an h2 with the artist and an h3
// with the album. Collaborating artists appear as multiple a.list_artist
// links next to a span.credited_name marker and are joined into one string.
func (e *Extractor) extractList(p *page.Page, scrapedOn string) []model.Release {
	var releases []model.Release

	for _, row := range dom.FindAll(p.Root, dom.ByTag("tr")) {
		entry := dom.Find(row, dom.ByTagClass("td", "main_entry"))
		if entry == nil {
			continue // header or spacer row
		}

		artistH2 := dom.Find(entry, dom.ByTag("h2"))
		albumH3 := dom.Find(entry, dom.ByTag("h3"))
		if artistH2 == nil || albumH3 == nil {
			continue
		}

		var artist string
		if dom.Find(artistH2, dom.ByTagClass("span", "credited_name")) != nil {
			var names []string
			for _, link := range dom.FindAll(artistH2, dom.ByTagClass("a", "list_artist")) {
				if name := dom.Text(link); name != "" {
					names = append(names, name)
				}
			}
			artist = strings.Join(names, e.joinSep)
		} else if link := dom.Find(artistH2, dom.ByTagClass("a", "list_artist")); link != nil {
			artist = dom.Text(link)
		} else {
			artist = dom.Text(artistH2)
		}

		var title, url string
		if link := dom.Find(albumH3, dom.ByTagClass("a", "list_album")); link != nil {
			title = dom.Text(link)
			url = e.absoluteURL(dom.Attr(link, "href"))
		} else {
			title = dom.Text(albumH3)
		}

		if artist == "" && title == "" {
			continue
		}

		releases = append(releases, model.Release{
			Artist:     artist,
			Title:      title,
			URL:        url,
			Source:     model.SourceList,
			ScrapedOn:  scrapedOn,
			SourceFile: p.Name,
		})
	}

	return releases
}

// extractChart walks the chart item blocks.
//
// Each div.page_charts_section_charts_item carries the album title in a
// span.ui_name_locale_original, the artist(s) in the credited-text
// container, an average rating span, and a primary genres block. Rating and
// genres are optional; a missing or unparseable rating stays nil.
func (e *Extractor) extractChart(p *page.Page, scrapedOn string) []model.Release {
	var releases []model.Release

	for _, item := range dom.FindAll(p.Root, dom.ByClass("page_charts_section_charts_item")) {
		title := dom.Text(dom.Find(item, dom.ByTagClass("span", "ui_name_locale_original")))
		if title == "" {
			continue
		}

		credited := dom.Find(item, dom.ByClass("page_charts_section_charts_item_credited_text"))
		if credited == nil {
			continue
		}
		var names []string
		for _, span := range dom.FindAll(credited, dom.ByTagClass("span", "ui_name_locale_original")) {
			if name := dom.Text(span); name != "" {
				names = append(names, name)
			}
		}
		artist := strings.Join(names, e.joinSep)
		if artist == "" {
			artist = dom.Text(credited)
		}
		if artist == "" {
			continue
		}

		var url string
		if link := dom.Find(item, dom.ByTagClass("a", "page_charts_section_charts_item_link")); link != nil {
			url = e.absoluteURL(dom.Attr(link, "href"))
		}

		var rating *float64
		ratingText := dom.Text(dom.Find(item, dom.ByTagClass("span", "page_charts_section_charts_item_details_average_num")))
		if v, err := strconv.ParseFloat(ratingText, 64); err == nil {
			rating = &v
		}

		var genres []string
		if block := dom.Find(item, dom.ByClass("page_charts_section_charts_item_genres_primary")); block != nil {
			for _, link := range dom.FindAll(block, dom.ByTagClass("a", "genre")) {
				if g := dom.Text(link); g != "" {
					genres = append(genres, g)
				}
			}
		}

		releases = append(releases, model.Release{
			Artist:     artist,
			Title:      title,
			URL:        url,
			Rating:     rating,
			Genres:     genres,
			Source:     model.SourceChart,
			ScrapedOn:  scrapedOn,
			SourceFile: p.Name,
		})
	}

	return releases
}

// absoluteURL resolves a page-relative album link against the site base URL.
func (e *Extractor) absoluteURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return e.baseURL + href
}
