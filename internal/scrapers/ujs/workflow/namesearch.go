package workflow

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var searchDuration, _ = meter.Float64Histogram(
	"ujs.search.duration",
	metric.WithDescription("wall time of a single system search"),
	metric.WithUnit("s"),
)

// NameSearch is everything about a participant name search that differs
// between the two systems.
type NameSearch struct {
	System   docket.System
	Endpoint string
	Layout   results.Layout
	// switches the landing page over to the participant search
	Select portal.Form
	// fills in the participant search
	Fill func(q NameQuery) portal.Form
	// requests another page of results given the form that produced the
	// previous page
	Page func(previous portal.Form, target results.PageTarget) portal.Form
}

// TimeBudgetError is the message recorded when pagination is cut short.
func TimeBudgetError(system docket.System) string {
	return fmt.Sprintf("%s: too many results to process in time", system)
}

// Observe records the duration of a search and ends its span with the
// outcome.
func Observe(ctx context.Context, system docket.System, start time.Time, found int, errs []string) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int("results", found),
		attribute.Int("errors", len(errs)),
	)
	if len(errs) > 0 {
		span.SetStatus(codes.Error, errs[0])
	}
	searchDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("system", string(system)),
	))
	slog.InfoContext(ctx, "search finished", "system", system, "results", found, "errors", len(errs))
}

// SearchByName runs a participant name search and follows every page of
// results. Results found before a failure are kept.
func (e Env) SearchByName(ctx context.Context, ns NameSearch, q NameQuery) ([]results.SearchResult, []string) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("SearchByName:%s", ns.System))
	defer span.End()

	found := []results.SearchResult{}
	var errs []string
	start := time.Now()
	defer func() {
		Observe(ctx, ns.System, start, len(found), errs)
	}()

	budget := e.Budget()
	runner, err := NewRunner(e, ns.System, ns.Endpoint)
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}

	landing, err := runner.Get(ctx, "landing page")
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}
	selected, err := runner.Post(ctx, "select participant search", landing, ns.Select)
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}
	page, err := runner.Post(ctx, "submit participant search", selected, ns.Fill(q))
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}

	list, queue, err := runner.Results(ctx, "results page 1", ns.Layout, page)
	if err != nil {
		errs = append(errs, err.Error())
	}
	found = append(found, list...)

	queued := map[string]bool{"Page$1": true}
	for _, t := range queue {
		queued[t.Argument] = true
	}

	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]

		if e.Expired(budget) {
			errs = append(errs, TimeBudgetError(ns.System))
			break
		}

		step := fmt.Sprintf("results page %d", target.Number)
		next, err := runner.PostPartial(ctx, step, page, ns.Page(page.Submitted, target))
		if err != nil {
			errs = append(errs, err.Error())
			break
		}
		page = next

		list, targets, err := runner.Results(ctx, step, ns.Layout, page)
		if err != nil {
			errs = append(errs, err.Error())
		}
		found = append(found, list...)

		for _, t := range targets {
			if queued[t.Argument] {
				continue
			}
			queued[t.Argument] = true
			queue = append(queue, t)
		}
	}

	found = results.Dedupe(found)
	return found, errs
}
