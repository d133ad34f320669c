package results

import (
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/lib/htmlutil"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Column pulls one field out of every row of a result table. The selector
// is relative to the results container and must match once per row.
type Column struct {
	Field    Field
	Selector string
	// when set, the value is this attribute resolved to an absolute url
	// instead of the element's text
	Attr string
	// optional columns may match no element at all, every row then gets an
	// empty value
	Optional bool
}

// Layout describes the results container of a page and its columns.
type Layout struct {
	Container string
	Columns   []Column
}

// StructureError is returned when the columns of a table do not line up.
type StructureError struct {
	Field Field
	Got   int
	Want  int
}

func (e StructureError) Error() string {
	return fmt.Sprintf("results table is misaligned: found %d values for %s but %d docket numbers", e.Got, e.Field, e.Want)
}

// Document parses either a full page or the update panels of a partial
// page response.
func Document(body string) (*goquery.Document, error) {
	if portal.IsDelta(body) {
		records, err := portal.ParseDelta(body)
		if err != nil {
			return nil, err
		}
		location, redirected := portal.DeltaRedirect(records)
		if redirected {
			return nil, fmt.Errorf("portal redirected the postback to %s", location)
		}
		body = portal.DeltaPanels(records)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

func (l Layout) values(base *url.URL, container *goquery.Selection, c Column) ([]string, error) {
	var values []string
	var err error
	container.Find(c.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if c.Attr == "" {
			values = append(values, htmlutil.SelectionText(sel))
			return true
		}
		var resolved string
		resolved, err = htmlutil.ResolveHref(base, sel.AttrOr(c.Attr, ""))
		if err != nil {
			err = fmt.Errorf("%s: %w", c.Field, err)
			return false
		}
		values = append(values, resolved)
		return true
	})
	return values, err
}

// Extract reads every row of the results container in `doc`. No container
// means there were no results. Relative links resolve against `base`.
func (l Layout) Extract(base *url.URL, doc *goquery.Document) ([]SearchResult, error) {
	container := doc.Find(l.Container).First()
	if container.Length() == 0 {
		return []SearchResult{}, nil
	}

	columns := make([][]string, len(l.Columns))
	rows := -1
	for i, c := range l.Columns {
		values, err := l.values(base, container, c)
		if err != nil {
			return nil, err
		}
		columns[i] = values
		if c.Field == FieldDocketNumber {
			rows = len(values)
		}
	}
	if rows < 0 {
		return nil, fmt.Errorf("layout %q has no docket number column", l.Container)
	}

	for i, c := range l.Columns {
		got := len(columns[i])
		if got == rows || (c.Optional && got == 0) {
			continue
		}
		return nil, StructureError{Field: c.Field, Got: got, Want: rows}
	}

	list := make([]SearchResult, rows)
	for i, c := range l.Columns {
		if len(columns[i]) == 0 {
			continue
		}
		for row := range list {
			list[row].set(c.Field, columns[i][row])
		}
	}
	return list, nil
}

// Parse is Document followed by Extract.
func (l Layout) Parse(base *url.URL, body string) ([]SearchResult, error) {
	doc, err := Document(body)
	if err != nil {
		return nil, err
	}
	return l.Extract(base, doc)
}
