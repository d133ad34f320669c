package ujs

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/fakeportal"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchNameAcrossSystems(t *testing.T) {
	cpPortal := fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		return fakeportal.Response{Status: http.StatusInternalServerError}
	})
	mdjPortal := fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		if req.Form.Get("ctl00$ctl00$ctl00$cphMain$cphDynamicContent$btnSearch") == "Search" {
			rows := fakeportal.Rows("MJ-05101-CR-%07d-2020", 1, 3)
			return fakeportal.Response{Body: fakeportal.Page(req.Index, fakeportal.MDJResults(rows))}
		}
		return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
	})

	searcher, err := NewSearcher(Options{
		CPEndpoint:  cpPortal.URL("/DocketSheets/CP.aspx"),
		MDJEndpoint: mdjPortal.URL("/DocketSheets/MDJ.aspx"),
	})
	require.NoError(t, err)

	found, errs := searcher.SearchName(context.Background(), workflow.NameQuery{First: "John", Last: "Smith"})
	require.Len(t, errs, 1)
	require.True(t, strings.HasPrefix(errs[0], "CP: "), errs[0])

	require.Contains(t, found, docket.SystemCP)
	require.NotNil(t, found[docket.SystemCP])
	require.Empty(t, found[docket.SystemCP])
	require.Len(t, found[docket.SystemMDJ], 3)
}

func TestSearchDocketsBatch(t *testing.T) {
	cpPortal := fakeportal.New(t, func(req fakeportal.Request) fakeportal.Response {
		if req.Method == http.MethodGet {
			return fakeportal.Response{Body: fakeportal.Page(req.Index, "")}
		}
		seq := req.Form.Get("ctl00$ctl00$ctl00$cphMain$cphDynamicContent$cphDynamicContent$docketNumberCriteriaControl$docketNumberControl$mtxtSequenceNumber")
		rows := fakeportal.Rows("CP-51-CR-%07d-2019", 0, 1)
		rows[0].DocketNumber = "CP-51-CR-" + seq + "-2019"
		return fakeportal.Response{Body: fakeportal.Page(req.Index, fakeportal.CPResults(rows))}
	})

	searcher, err := NewSearcher(Options{
		CPEndpoint:     cpPortal.URL("/DocketSheets/CP.aspx"),
		MDJEndpoint:    "http://127.0.0.1:1/DocketSheets/MDJ.aspx",
		MaxConcurrency: 2,
	})
	require.NoError(t, err)

	found, errs := searcher.SearchDockets(context.Background(), []string{
		"CP-51-CR-0000001-2019",
		"not-a-docket",
		"CP-51-CR-0000002-2019",
	})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "not-a-docket")
	require.Len(t, found, 2)
	require.Equal(t, "CP-51-CR-0000001-2019", found[0].DocketNumber)
	require.Equal(t, "CP-51-CR-0000002-2019", found[1].DocketNumber)
}

type stubTarget struct {
	system  docket.System
	delay   time.Duration
	running *int32
	peak    *int32
	mu      sync.Mutex
	seen    []string
}

func (s *stubTarget) System() docket.System {
	return s.system
}

func (s *stubTarget) Classify(raw string) bool {
	system, ok := docket.Classify(raw)
	return ok && system == s.system
}

func (s *stubTarget) track() func() {
	n := atomic.AddInt32(s.running, 1)
	for {
		peak := atomic.LoadInt32(s.peak)
		if n <= peak || atomic.CompareAndSwapInt32(s.peak, peak, n) {
			break
		}
	}
	time.Sleep(s.delay)
	return func() { atomic.AddInt32(s.running, -1) }
}

func (s *stubTarget) SearchByName(ctx context.Context, q workflow.NameQuery) ([]results.SearchResult, []string) {
	defer s.track()()
	return []results.SearchResult{{DocketNumber: string(s.system) + "-" + q.Last}}, nil
}

func (s *stubTarget) SearchByDocketNumber(ctx context.Context, raw string) ([]results.SearchResult, []string) {
	defer s.track()()
	s.mu.Lock()
	s.seen = append(s.seen, raw)
	s.mu.Unlock()
	return []results.SearchResult{{DocketNumber: strings.ToUpper(raw)}}, nil
}

func TestSearchDocketsConcurrencyLimit(t *testing.T) {
	var running, peak int32
	cpTarget := &stubTarget{system: docket.SystemCP, delay: time.Millisecond * 20, running: &running, peak: &peak}
	mdjTarget := &stubTarget{system: docket.SystemMDJ, delay: time.Millisecond * 20, running: &running, peak: &peak}
	searcher := NewSearcherWithTargets(2, cpTarget, mdjTarget)

	var raws []string
	for i := 0; i < 8; i++ {
		raws = append(raws, fakeportal.Rows("CP-51-CR-%07d-2019", i, 1)[0].DocketNumber)
	}
	raws = append(raws, "mj-05101-cr-0000001-2020")

	found, errs := searcher.SearchDockets(context.Background(), raws)
	require.Empty(t, errs)
	require.Len(t, found, 9)
	for i, raw := range raws {
		require.Equal(t, strings.ToUpper(raw), found[i].DocketNumber)
	}
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	require.Len(t, cpTarget.seen, 8)
	require.Equal(t, []string{"mj-05101-cr-0000001-2020"}, mdjTarget.seen)
}

func TestSearchNameSystems(t *testing.T) {
	var running, peak int32
	searcher := NewSearcherWithTargets(
		0,
		&stubTarget{system: docket.SystemCP, running: &running, peak: &peak},
		&stubTarget{system: docket.SystemMDJ, running: &running, peak: &peak},
	)

	found, errs := searcher.SearchName(
		context.Background(),
		workflow.NameQuery{Last: "Smith"},
		docket.SystemMDJ, docket.System("XYZ"),
	)
	require.Equal(t, []string{"unsupported court: XYZ"}, errs)
	require.Equal(t, map[docket.System][]results.SearchResult{
		docket.SystemMDJ: {{DocketNumber: "MDJ-Smith"}},
	}, found)
}
