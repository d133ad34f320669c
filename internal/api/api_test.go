package api

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	query   workflow.NameQuery
	systems []docket.System
	dockets []string
}

func (f *fakeSearcher) SearchName(ctx context.Context, q workflow.NameQuery, systems ...docket.System) (map[docket.System][]results.SearchResult, []string) {
	f.query = q
	f.systems = systems
	return map[docket.System][]results.SearchResult{
		docket.SystemCP:  {},
		docket.SystemMDJ: {{DocketNumber: "MJ-05101-CR-0000001-2020", Court: "MJ"}},
	}, []string{"CP: landing page: GET https://ujsportal.pacourts.us/DocketSheets/CP.aspx: unexpected status 500"}
}

func (f *fakeSearcher) SearchDocket(ctx context.Context, raw string) ([]results.SearchResult, []string) {
	f.dockets = []string{raw}
	return []results.SearchResult{{DocketNumber: raw}}, nil
}

func (f *fakeSearcher) SearchDockets(ctx context.Context, raws []string) ([]results.SearchResult, []string) {
	f.dockets = raws
	return []results.SearchResult{{DocketNumber: raws[0]}}, []string{`"bad" is not a correctly formatted docket number`}
}

func do(t *testing.T, handler http.Handler, req *http.Request) (int, map[string]any) {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestSearchNameGet(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := NewHandler(searcher, "")

	query := url.Values{}
	query.Set("first_name", "John")
	query.Set("last_name", "Smith")
	query.Set("dob", "1970-01-31")
	status, body := do(t, handler, httptest.NewRequest(http.MethodGet, "/search/name/?"+query.Encode(), nil))

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, workflow.NameQuery{
		First: "John",
		Last:  "Smith",
		DOB:   time.Date(1970, 1, 31, 0, 0, 0, 0, time.UTC),
	}, searcher.query)
	require.Empty(t, searcher.systems)

	expected := map[string]any{
		"searchResults": map[string]any{
			"CP": []any{},
			"MDJ": []any{map[string]any{
				"docket_number":    "MJ-05101-CR-0000001-2020",
				"court":            "MJ",
				"docket_sheet_url": "",
				"summary_url":      "",
				"caption":          "",
				"filing_date":      "",
				"case_status":      "",
				"otn":              "",
				"dob":              "",
				"participants":     "",
				"county":           "",
			}},
		},
		"errors": []any{"CP: landing page: GET https://ujsportal.pacourts.us/DocketSheets/CP.aspx: unexpected status 500"},
	}
	if diff := cmp.Diff(expected, body); diff != "" {
		t.Fatal(diff)
	}
}

func TestSearchNamePostCourt(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := NewHandler(searcher, "")

	req := httptest.NewRequest(http.MethodPost, "/search/name", strings.NewReader(`{"first_name": "John", "court": "mdj"}`))
	req.Header.Set("Content-Type", "application/json")
	status, _ := do(t, handler, req)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []docket.System{docket.SystemMDJ}, searcher.systems)
	require.Equal(t, "John", searcher.query.First)
}

func TestSearchNameInvalid(t *testing.T) {
	handler := NewHandler(&fakeSearcher{}, "")

	req := httptest.NewRequest(http.MethodPost, "/search/name", strings.NewReader(`{"last_name": "Smith", "dob": "31/01/1970", "court": "XYZ"}`))
	status, body := do(t, handler, req)

	require.Equal(t, http.StatusBadRequest, status)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, errs, "first_name")
	require.Contains(t, errs, "dob")
	require.Contains(t, errs, "court")
}

func TestSearchDocket(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := NewHandler(searcher, "")

	req := httptest.NewRequest(http.MethodPost, "/search/docket/", strings.NewReader(`{"docket_number": "CP-51-CR-0000001-2019"}`))
	status, body := do(t, handler, req)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []string{"CP-51-CR-0000001-2019"}, searcher.dockets)
	require.Equal(t, []any{}, body["errors"])

	req = httptest.NewRequest(http.MethodPost, "/search/docket", strings.NewReader(`{}`))
	status, _ = do(t, handler, req)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSearchDocketsForm(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := NewHandler(searcher, "")

	form := url.Values{}
	form.Set("docket_numbers", "CP-51-CR-0000001-2019, bad")
	req := httptest.NewRequest(http.MethodPost, "/search/docket/many", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	status, body := do(t, handler, req)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []string{"CP-51-CR-0000001-2019", "bad"}, searcher.dockets)
	require.Len(t, body["errors"], 1)
}

func TestAccessToken(t *testing.T) {
	handler := NewHandler(&fakeSearcher{}, "secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/docket", strings.NewReader(`{"docket_number": "x"}`))
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/search/docket", strings.NewReader(`{"docket_number": "x"}`))
	req.Header.Set("Authorization", "Bearer secret")
	status, _ := do(t, handler, req)
	require.Equal(t, http.StatusOK, status)
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewHandler(&fakeSearcher{}, "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/docket", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
