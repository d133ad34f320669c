// Package mdj searches the Magisterial District Judge docket sheets.
package mdj

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
	"errors"
	"fmt"
	"log/slog"
)

const DefaultEndpoint = "https://ujsportal.pacourts.us/DocketSheets/MDJ.aspx"

type Searcher struct {
	endpoint string
	env      workflow.Env
	counties *docket.CountyTable
}

// NewSearcher returns a searcher for the MDJ docket sheets at `endpoint`,
// DefaultEndpoint is used when it is empty. `counties` resolves the county
// of a docket number.
func NewSearcher(endpoint string, env workflow.Env, counties *docket.CountyTable) *Searcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Searcher{
		endpoint: endpoint,
		env:      env,
		counties: counties,
	}
}

func (s *Searcher) System() docket.System {
	return docket.SystemMDJ
}

func (s *Searcher) Classify(raw string) bool {
	system, ok := docket.Classify(raw)
	return ok && system == docket.SystemMDJ
}

func (s *Searcher) SearchByName(ctx context.Context, q workflow.NameQuery) ([]results.SearchResult, []string) {
	return s.env.SearchByName(ctx, workflow.NameSearch{
		System:   docket.SystemMDJ,
		Endpoint: s.endpoint,
		Layout:   results.MDJ,
		Select:   selectParticipantForm(),
		Fill: func(q workflow.NameQuery) portal.Form {
			return participantForm(s.env, q)
		},
		Page: pageForm,
	}, q)
}

func (s *Searcher) SearchByDocketNumber(ctx context.Context, raw string) ([]results.SearchResult, []string) {
	fail := func(err error) ([]results.SearchResult, []string) {
		return []results.SearchResult{}, []string{fmt.Sprintf("%s: %s", docket.SystemMDJ, err.Error())}
	}

	dn, err := docket.ParseAs(docket.SystemMDJ, raw)
	if err != nil {
		return fail(err)
	}
	county, err := s.counties.Lookup(dn.Area, dn.Office)
	if errors.Is(err, docket.ErrAmbiguousCounty) {
		slog.ErrorContext(ctx, "county table is ambiguous", "docket", dn.String(), "err", err)
	}
	if err != nil {
		return fail(err)
	}
	slog.DebugContext(ctx, "searching docket", "system", docket.SystemMDJ, "docket", dn.String(), "county", county)

	return s.env.SearchByDocket(
		ctx, docket.SystemMDJ, s.endpoint, results.MDJ,
		func(ctx context.Context, runner workflow.Runner) (workflow.Page, error) {
			landing, err := runner.Get(ctx, "landing page")
			if err != nil {
				return workflow.Page{}, err
			}

			option, err := matchCounty(landing.Body, county)
			if err != nil {
				return workflow.Page{}, workflow.StepError{System: docket.SystemMDJ, Step: "select county", Err: err}
			}
			countyPage, err := runner.Post(ctx, "select county", landing, selectCountyForm(option))
			if err != nil {
				return workflow.Page{}, err
			}

			err = checkOffice(countyPage.Body, dn.OfficeCode())
			if err != nil {
				return workflow.Page{}, workflow.StepError{System: docket.SystemMDJ, Step: "select court office", Err: err}
			}
			officePage, err := runner.Post(ctx, "select court office", countyPage, selectOfficeForm(countyPage.Submitted, dn))
			if err != nil {
				return workflow.Page{}, err
			}

			return runner.Post(ctx, "submit docket search", officePage, docketForm(officePage.Submitted, dn))
		},
	)
}
