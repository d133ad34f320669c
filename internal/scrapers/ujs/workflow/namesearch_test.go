package workflow

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/fakeportal"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testNameSearch(endpoint string) NameSearch {
	return NameSearch{
		System:   docket.SystemMDJ,
		Endpoint: endpoint,
		Layout:   results.MDJ,
		Select:   portal.Form{"searchType": "ParticipantName"},
		Fill: func(q NameQuery) portal.Form {
			return portal.Form{
				"searchType": "ParticipantName",
				"last":       q.Last,
				"first":      q.First,
				"search":     "Search",
			}
		},
		Page: func(previous portal.Form, target results.PageTarget) portal.Form {
			return previous.Without("search").With(portal.Form{
				portal.EventTargetField:   target.EventTarget,
				portal.EventArgumentField: target.Argument,
			})
		},
	}
}

func pagedPortal(t *testing.T) *fakeportal.Portal {
	return fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		switch {
		case req.Method == http.MethodGet:
			return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
		case req.Form.Get("search") == "Search":
			rows := fakeportal.Rows("MJ-05101-CR-%07d-2020", 1, 10)
			return fakeportal.Response{Body: fakeportal.Page(req.Index, fakeportal.MDJResults(rows, 2, 3))}
		case req.Form.Get(portal.EventArgumentField) == "Page$2":
			rows := fakeportal.Rows("MJ-05101-CR-%07d-2020", 11, 10)
			return fakeportal.Response{Body: fakeportal.Delta(req.Index, fakeportal.MDJResults(rows, 1, 3))}
		case req.Form.Get(portal.EventArgumentField) == "Page$3":
			rows := fakeportal.Rows("MJ-05101-CR-%07d-2020", 21, 4)
			return fakeportal.Response{Body: fakeportal.Delta(req.Index, fakeportal.MDJResults(rows, 1, 2))}
		default:
			return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
		}
	})
}

func TestSearchByNamePaginates(t *testing.T) {
	fake := pagedPortal(t)
	env := Env{}

	list, errs := env.SearchByName(
		context.Background(),
		testNameSearch(fake.URL("/DocketSheets/MDJ.aspx")),
		NameQuery{First: "John", Last: "Smith"},
	)
	require.Empty(t, errs)
	require.Len(t, list, 24)
	require.Equal(t, "MJ-05101-CR-0000001-2020", list[0].DocketNumber)
	require.Equal(t, "MJ-05101-CR-0000024-2020", list[23].DocketNumber)

	requests := fake.Requests()
	require.Len(t, requests, 5)

	partials := 0
	for i, req := range requests {
		if i > 0 {
			// every postback echoes the tokens of the response before it
			require.Equal(t, fakeportal.Nonce(i-1), req.Form.Get(portal.NonceField))
			require.Equal(t, fakeportal.Viewstate(i-1), req.Form.Get(portal.ViewstateField))
		}
		if req.Partial() {
			partials++
			require.Equal(t, "true", req.Form.Get(portal.AsyncPostField))
			require.Equal(t, "XMLHttpRequest", req.Header.Get("X-Requested-With"))
			require.Equal(t, "Smith", req.Form.Get("last"))
			require.Empty(t, req.Form.Get("search"))
		}
	}
	require.Equal(t, 2, partials)
}

func TestSearchByNameTimeBudget(t *testing.T) {
	fake := pagedPortal(t)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	env := Env{
		TimeBudget: time.Second * 10,
		Now: func() time.Time {
			current := now
			now = now.Add(time.Second * 6)
			return current
		},
	}

	list, errs := env.SearchByName(
		context.Background(),
		testNameSearch(fake.URL("/DocketSheets/MDJ.aspx")),
		NameQuery{Last: "Smith"},
	)
	require.Equal(t, []string{"MDJ: too many results to process in time"}, errs)
	require.Len(t, list, 20)
}

func TestSearchByNameLandingFails(t *testing.T) {
	fake := fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		return fakeportal.Response{Status: http.StatusInternalServerError}
	})

	list, errs := Env{}.SearchByName(
		context.Background(),
		testNameSearch(fake.URL("/DocketSheets/MDJ.aspx")),
		NameQuery{Last: "Smith"},
	)
	require.NotNil(t, list)
	require.Empty(t, list)
	require.Len(t, errs, 1)
	require.True(t, strings.HasPrefix(errs[0], "MDJ: landing page:"))
	require.Len(t, fake.Requests(), 1)
}

func TestSearchByNameMissingToken(t *testing.T) {
	fake := fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		if req.Method == http.MethodGet {
			return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
		}
		return fakeportal.Response{Body: "<html><body>Please try again later</body></html>"}
	})

	list, errs := Env{}.SearchByName(
		context.Background(),
		testNameSearch(fake.URL("/DocketSheets/MDJ.aspx")),
		NameQuery{Last: "Smith"},
	)
	require.Empty(t, list)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "select participant search")
	require.Contains(t, errs[0], "nonce")
}

func TestSearchByNameKeepsEarlierPages(t *testing.T) {
	fake := fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		switch {
		case req.Method == http.MethodGet:
			return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
		case req.Form.Get("search") == "Search":
			rows := fakeportal.Rows("MJ-05101-CR-%07d-2020", 1, 10)
			return fakeportal.Response{Body: fakeportal.Page(req.Index, fakeportal.MDJResults(rows, 2))}
		case req.Partial():
			return fakeportal.Response{Status: http.StatusBadGateway}
		default:
			return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
		}
	})

	list, errs := Env{}.SearchByName(
		context.Background(),
		testNameSearch(fake.URL("/DocketSheets/MDJ.aspx")),
		NameQuery{Last: "Smith"},
	)
	require.Len(t, list, 10)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "results page 2")
}

func TestBudget(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	unbounded := NewBudget(start, 0)
	require.False(t, unbounded.Exhausted(start.Add(time.Hour*24)))

	budget := NewBudget(start, time.Minute)
	require.False(t, budget.Exhausted(start.Add(time.Second*59)))
	require.True(t, budget.Exhausted(start.Add(time.Minute)))
}

func TestEnvDates(t *testing.T) {
	env := Env{
		Now: func() time.Time {
			return time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC)
		},
	}
	// 3am UTC is still the previous day in the portal's timezone
	require.Equal(t, "03/04/2024", env.Today())
	require.Equal(t, "", env.Date(time.Time{}))
	require.Equal(t, "07/09/1980", env.Date(time.Date(1980, 7, 9, 0, 0, 0, 0, time.UTC)))

	env.DateLayout = "2006-01-02"
	require.Equal(t, "1980-07-09", env.Date(time.Date(1980, 7, 9, 0, 0, 0, 0, time.UTC)))
}
