// Package ujs fans searches out over the docket sheet systems of the portal.
package ujs

import (
	"context"
	"docketsearch/internal/scrapers/ujs/cp"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/mdj"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
	"docketsearch/lib/telemetry"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var tracer = telemetry.Tracer("docketsearch/ujs")

// SearchTarget is one docket sheet system of the portal. Every call opens
// its own session so calls may run concurrently.
type SearchTarget interface {
	System() docket.System
	// Classify reports whether `raw` is a docket number of this system.
	Classify(raw string) bool
	SearchByName(ctx context.Context, q workflow.NameQuery) ([]results.SearchResult, []string)
	SearchByDocketNumber(ctx context.Context, raw string) ([]results.SearchResult, []string)
}

type Options struct {
	CPEndpoint  string
	MDJEndpoint string
	Env         workflow.Env
	Counties    *docket.CountyTable
	// the most searches run at once, 0 means unbounded
	MaxConcurrency int
}

type Searcher struct {
	targets        []SearchTarget
	maxConcurrency int
}

// NewSearcher creates a Searcher over the CP and MDJ systems.
func NewSearcher(opts Options) (*Searcher, error) {
	counties := opts.Counties
	if counties == nil {
		var err error
		counties, err = docket.DefaultCountyTable()
		if err != nil {
			return nil, err
		}
	}
	return NewSearcherWithTargets(
		opts.MaxConcurrency,
		cp.NewSearcher(opts.CPEndpoint, opts.Env),
		mdj.NewSearcher(opts.MDJEndpoint, opts.Env, counties),
	), nil
}

// NewSearcherWithTargets creates a Searcher over arbitrary targets, docket
// numbers are offered to the targets in the order given.
func NewSearcherWithTargets(maxConcurrency int, targets ...SearchTarget) *Searcher {
	return &Searcher{
		targets:        targets,
		maxConcurrency: maxConcurrency,
	}
}

func (s *Searcher) group() *errgroup.Group {
	g := &errgroup.Group{}
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}
	return g
}

func (s *Searcher) target(system docket.System) (SearchTarget, bool) {
	for _, t := range s.targets {
		if t.System() == system {
			return t, true
		}
	}
	return nil, false
}

// Systems lists the systems searched when a name search names none.
func (s *Searcher) Systems() []docket.System {
	systems := make([]docket.System, len(s.targets))
	for i, t := range s.targets {
		systems[i] = t.System()
	}
	return systems
}

type outcome struct {
	results []results.SearchResult
	errs    []string
}

// SearchName searches for a participant in every system in `systems` at
// once (every known system when empty). Every requested system gets an
// entry in the result even when its search failed.
func (s *Searcher) SearchName(ctx context.Context, q workflow.NameQuery, systems ...docket.System) (map[docket.System][]results.SearchResult, []string) {
	ctx, span := tracer.Start(ctx, "SearchName")
	defer span.End()

	if len(systems) == 0 {
		systems = s.Systems()
	}

	found := map[docket.System][]results.SearchResult{}
	var errs []string

	var selected []SearchTarget
	for _, system := range systems {
		target, ok := s.target(system)
		if !ok {
			errs = append(errs, fmt.Sprintf("unsupported court: %s", system))
			continue
		}
		if _, dup := found[system]; dup {
			continue
		}
		found[system] = []results.SearchResult{}
		selected = append(selected, target)
	}

	outcomes := make([]outcome, len(selected))
	g := s.group()
	for i, target := range selected {
		g.Go(func() error {
			list, targetErrs := target.SearchByName(ctx, q)
			outcomes[i] = outcome{results: list, errs: targetErrs}
			return nil
		})
	}
	g.Wait()

	for i, target := range selected {
		if outcomes[i].results != nil {
			found[target.System()] = outcomes[i].results
		}
		errs = append(errs, outcomes[i].errs...)
	}

	span.SetAttributes(attribute.Int("errors", len(errs)))
	slog.InfoContext(ctx, "name search finished", "systems", len(selected), "errors", len(errs))
	return found, errs
}

// SearchDocket looks up one docket number in the system its format belongs to.
func (s *Searcher) SearchDocket(ctx context.Context, raw string) ([]results.SearchResult, []string) {
	for _, target := range s.targets {
		if target.Classify(raw) {
			list, errs := target.SearchByDocketNumber(ctx, raw)
			if list == nil {
				list = []results.SearchResult{}
			}
			return list, errs
		}
	}
	return []results.SearchResult{}, []string{docket.ValidationError{Input: raw}.Error()}
}

// SearchDockets looks up every docket number concurrently. Results are
// returned in input order, a malformed docket number only fails itself.
func (s *Searcher) SearchDockets(ctx context.Context, raws []string) ([]results.SearchResult, []string) {
	ctx, span := tracer.Start(ctx, "SearchDockets")
	defer span.End()
	span.SetAttributes(attribute.Int("dockets", len(raws)))

	outcomes := make([]outcome, len(raws))
	g := s.group()
	for i, raw := range raws {
		g.Go(func() error {
			list, errs := s.SearchDocket(ctx, raw)
			outcomes[i] = outcome{results: list, errs: errs}
			return nil
		})
	}
	g.Wait()

	found := []results.SearchResult{}
	var errs []string
	for _, o := range outcomes {
		found = append(found, o.results...)
		errs = append(errs, o.errs...)
	}

	span.SetAttributes(attribute.Int("errors", len(errs)))
	slog.InfoContext(ctx, "docket search finished", "dockets", len(raws), "results", len(found), "errors", len(errs))
	return found, errs
}
