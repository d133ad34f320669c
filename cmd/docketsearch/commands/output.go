package commands

import (
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/results"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type jsonOutputBody struct {
	SearchResults any      `json:"searchResults"`
	Errors        []string `json:"errors"`
}

func printJson(w io.Writer, found any, errs []string) error {
	if errs == nil {
		errs = []string{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonOutputBody{SearchResults: found, Errors: errs})
}

func renderResults(w io.Writer, title string, list []results.SearchResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Docket Number", "Caption", "Filed", "Status", "OTN", "DOB", "County", "Docket Sheet"})
	for _, r := range list {
		t.AppendRow(table.Row{
			r.DocketNumber,
			text.Trim(r.Caption, 40),
			r.FilingDate,
			r.CaseStatus,
			r.OTN,
			r.DOB,
			r.County,
			r.DocketSheetUrl,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d results", len(list))})
	t.Render()
}

func renderErrors(w io.Writer, errs []string) {
	if len(errs) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Errors"})
	for _, e := range errs {
		t.AppendRow(table.Row{e})
	}
	t.Render()
}

func printNameResults(found map[docket.System][]results.SearchResult, errs []string) {
	if jsonOutput {
		err := printJson(os.Stdout, found, errs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}
	for _, system := range docket.Systems {
		list, ok := found[system]
		if !ok {
			continue
		}
		renderResults(os.Stdout, string(system), list)
	}
	renderErrors(os.Stderr, errs)
}

func printDocketResults(list []results.SearchResult, errs []string) {
	if jsonOutput {
		err := printJson(os.Stdout, list, errs)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}
	renderResults(os.Stdout, "Dockets", list)
	renderErrors(os.Stderr, errs)
}
