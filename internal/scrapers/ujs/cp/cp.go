// Package cp searches the Court of Common Pleas docket sheets.
package cp

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
	"fmt"
	"log/slog"
)

const DefaultEndpoint = "https://ujsportal.pacourts.us/DocketSheets/CP.aspx"

type Searcher struct {
	endpoint string
	env      workflow.Env
}

// NewSearcher returns a searcher for the CP docket sheets at `endpoint`,
// DefaultEndpoint is used when it is empty.
func NewSearcher(endpoint string, env workflow.Env) *Searcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Searcher{
		endpoint: endpoint,
		env:      env,
	}
}

func (s *Searcher) System() docket.System {
	return docket.SystemCP
}

func (s *Searcher) Classify(raw string) bool {
	system, ok := docket.Classify(raw)
	return ok && system == docket.SystemCP
}

func (s *Searcher) SearchByName(ctx context.Context, q workflow.NameQuery) ([]results.SearchResult, []string) {
	return s.env.SearchByName(ctx, workflow.NameSearch{
		System:   docket.SystemCP,
		Endpoint: s.endpoint,
		Layout:   results.CP,
		Select:   selectParticipantForm(),
		Fill: func(q workflow.NameQuery) portal.Form {
			return participantForm(s.env, q)
		},
		Page: pageForm,
	}, q)
}

func (s *Searcher) SearchByDocketNumber(ctx context.Context, raw string) ([]results.SearchResult, []string) {
	dn, err := docket.ParseAs(docket.SystemCP, raw)
	if err != nil {
		return []results.SearchResult{}, []string{fmt.Sprintf("%s: %s", docket.SystemCP, err.Error())}
	}
	slog.DebugContext(ctx, "searching docket", "system", docket.SystemCP, "docket", dn.String())

	return s.env.SearchByDocket(
		ctx, docket.SystemCP, s.endpoint, results.CP,
		func(ctx context.Context, runner workflow.Runner) (workflow.Page, error) {
			landing, err := runner.Get(ctx, "landing page")
			if err != nil {
				return workflow.Page{}, err
			}
			return runner.Post(ctx, "submit docket search", landing, docketForm(dn))
		},
	)
}
