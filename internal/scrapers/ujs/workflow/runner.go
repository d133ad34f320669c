package workflow

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/lib/telemetry"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = telemetry.Tracer("docketsearch/ujs/workflow")
var meter = telemetry.Meter("docketsearch/ujs/workflow")

var requestCounter, _ = meter.Int64Counter(
	"ujs.requests",
	metric.WithDescription("requests made to the portal"),
)
var resultCounter, _ = meter.Int64Counter(
	"ujs.results",
	metric.WithDescription("search results extracted from the portal"),
)

// StepError is a failed step of a search.
type StepError struct {
	System docket.System
	Step   string
	Err    error
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.System, e.Step, e.Err.Error())
}

func (e StepError) Unwrap() error {
	return e.Err
}

// Page is one response of the portal along with the tokens harvested from it
// and the form that was submitted to get it.
type Page struct {
	Body      string
	Tokens    portal.Tokens
	Submitted portal.Form
}

// Runner performs the steps of one search against one endpoint.
type Runner struct {
	System   docket.System
	Endpoint *url.URL
	Session  *portal.Session
}

func NewRunner(env Env, system docket.System, endpoint string) (Runner, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return Runner{}, fmt.Errorf("%s: %w", system, err)
	}
	session, err := env.NewSession(endpoint, string(system))
	if err != nil {
		return Runner{}, fmt.Errorf("%s: %w", system, err)
	}
	return Runner{
		System:   system,
		Endpoint: parsed,
		Session:  session,
	}, nil
}

func (r Runner) fail(step string, err error) error {
	return StepError{System: r.System, Step: step, Err: err}
}

func (r Runner) harvest(ctx context.Context, step string, body string, submitted portal.Form) (Page, error) {
	requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("system", string(r.System)),
		attribute.String("step", step),
	))
	tokens, err := portal.ExtractTokens(body)
	if err != nil {
		return Page{}, r.fail(step, err)
	}
	slog.DebugContext(ctx, "step finished", "system", r.System, "step", step)
	return Page{
		Body:      body,
		Tokens:    tokens,
		Submitted: submitted,
	}, nil
}

// Get fetches the landing page.
func (r Runner) Get(ctx context.Context, step string) (Page, error) {
	body, err := r.Session.Fetch(ctx, r.Endpoint.String())
	if err != nil {
		return Page{}, r.fail(step, err)
	}
	return r.harvest(ctx, step, body, nil)
}

// Post submits `form` with the tokens of `prev` as a full postback.
func (r Runner) Post(ctx context.Context, step string, prev Page, form portal.Form) (Page, error) {
	form = form.With(prev.Tokens.Form())
	body, err := r.Session.Submit(ctx, r.Endpoint.String(), form, nil)
	if err != nil {
		return Page{}, r.fail(step, err)
	}
	return r.harvest(ctx, step, body, form)
}

// PostPartial submits `form` with the tokens of `prev` as an update panel
// postback, the response is a partial page.
func (r Runner) PostPartial(ctx context.Context, step string, prev Page, form portal.Form) (Page, error) {
	form = form.With(prev.Tokens.Form()).With(portal.Form{
		portal.AsyncPostField: "true",
	})
	body, err := r.Session.Submit(ctx, r.Endpoint.String(), form, portal.AjaxHeaders(r.Endpoint))
	if err != nil {
		return Page{}, r.fail(step, err)
	}
	if !portal.IsDelta(body) {
		return Page{}, r.fail(step, errors.New("expected a partial page response"))
	}
	return r.harvest(ctx, step, body, form)
}

// Results extracts the results on `page` with `layout` along with the pager
// links found on it. Pager links are still returned when the rows of the
// page could not be extracted.
func (r Runner) Results(ctx context.Context, step string, layout results.Layout, page Page) ([]results.SearchResult, []results.PageTarget, error) {
	doc, err := results.Document(page.Body)
	if err != nil {
		return nil, nil, r.fail(step, err)
	}
	targets := results.FindPageTargets(doc)
	list, err := layout.Extract(r.Endpoint, doc)
	if err != nil {
		return nil, targets, r.fail(step, err)
	}
	resultCounter.Add(ctx, int64(len(list)), metric.WithAttributes(
		attribute.String("system", string(r.System)),
	))
	return list, targets, nil
}
