package workflow

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/results"
	"fmt"
	"time"
)

// DocketSteps drives a fresh runner up to the page holding the results of a
// docket number search.
type DocketSteps func(ctx context.Context, runner Runner) (Page, error)

// SearchByDocket opens a session, runs `steps` and extracts the results
// with `layout`. A docket that does not exist yields no results and no errors.
func (e Env) SearchByDocket(
	ctx context.Context,
	system docket.System,
	endpoint string,
	layout results.Layout,
	steps DocketSteps,
) ([]results.SearchResult, []string) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("SearchByDocket:%s", system))
	defer span.End()

	found := []results.SearchResult{}
	var errs []string
	start := time.Now()
	defer func() {
		Observe(ctx, system, start, len(found), errs)
	}()

	runner, err := NewRunner(e, system, endpoint)
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}
	page, err := steps(ctx, runner)
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}
	list, _, err := runner.Results(ctx, "results page", layout, page)
	if err != nil {
		errs = append(errs, err.Error())
		return found, errs
	}
	found = append(found, list...)
	return found, errs
}
