// Package api exposes the docket searches as a JSON HTTP API.
package api

import (
	"context"
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
	"docketsearch/lib/serviceutil"
	"docketsearch/lib/telemetry"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("docketsearch/api")

const dateLayout = "2006-01-02"

// Searcher is what the API needs from the orchestrator.
type Searcher interface {
	SearchName(ctx context.Context, q workflow.NameQuery, systems ...docket.System) (map[docket.System][]results.SearchResult, []string)
	SearchDocket(ctx context.Context, raw string) ([]results.SearchResult, []string)
	SearchDockets(ctx context.Context, raws []string) ([]results.SearchResult, []string)
}

type Handlers struct {
	searcher Searcher
}

// NewHandler routes the search endpoints, every request must carry
// `accessToken` as a bearer token unless it is empty.
func NewHandler(searcher Searcher, accessToken string) http.Handler {
	h := &Handlers{searcher: searcher}

	mux := http.NewServeMux()
	for _, suffix := range []string{"", "/{$}"} {
		mux.HandleFunc("GET /search/name"+suffix, h.HandleSearchName)
		mux.HandleFunc("POST /search/name"+suffix, h.HandleSearchName)
		mux.HandleFunc("POST /search/docket"+suffix, h.HandleSearchDocket)
		mux.HandleFunc("POST /search/docket/many"+suffix, h.HandleSearchDockets)
	}

	var handler http.Handler = mux
	if accessToken != "" {
		handler = serviceutil.VerifyAccessToken(accessToken, handler)
	}
	return traced(handler)
}

func traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(
			r.Context(),
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()
		span.SetAttributes(attribute.String("http.route", r.URL.Path))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type searchResponse struct {
	SearchResults any      `json:"searchResults"`
	Errors        []string `json:"errors"`
}

type errorResponse struct {
	Errors map[string][]string `json:"errors"`
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to write response", "err", err)
	}
}

func writeSearch(w http.ResponseWriter, found any, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	writeJson(w, http.StatusOK, searchResponse{
		SearchResults: found,
		Errors:        errs,
	})
}

func writeInvalid(w http.ResponseWriter, fields map[string][]string) {
	writeJson(w, http.StatusBadRequest, errorResponse{Errors: fields})
}

func isForm(r *http.Request) bool {
	mediatype, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediatype == "application/x-www-form-urlencoded" || mediatype == "multipart/form-data"
}

// decodeBody reads a JSON body into `out`, form encoded bodies are handed
// to `fromForm` instead.
func decodeBody(r *http.Request, out any, fromForm func(get func(string) string)) error {
	if isForm(r) {
		err := r.ParseForm()
		if err != nil {
			return err
		}
		fromForm(r.PostForm.Get)
		return nil
	}
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(out)
	if err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

type nameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Court     string `json:"court"`
}

func (req *nameRequest) fill(get func(string) string) {
	req.FirstName = get("first_name")
	req.LastName = get("last_name")
	req.DOB = get("dob")
	req.Court = get("court")
}

func (req nameRequest) validate() (workflow.NameQuery, []docket.System, map[string][]string) {
	invalid := map[string][]string{}
	q := workflow.NameQuery{
		First: strings.TrimSpace(req.FirstName),
		Last:  strings.TrimSpace(req.LastName),
	}
	if q.First == "" {
		invalid["first_name"] = append(invalid["first_name"], "This field is required.")
	}
	if strings.TrimSpace(req.DOB) != "" {
		dob, err := time.Parse(dateLayout, strings.TrimSpace(req.DOB))
		if err != nil {
			invalid["dob"] = append(invalid["dob"], "Date has wrong format. Use YYYY-MM-DD.")
		}
		q.DOB = dob
	}

	var systems []docket.System
	court := strings.TrimSpace(req.Court)
	if court != "" && !strings.EqualFold(court, "both") {
		system, err := docket.ParseSystem(court)
		if err != nil {
			invalid["court"] = append(invalid["court"], err.Error())
		}
		systems = []docket.System{system}
	}
	return q, systems, invalid
}

// HandleSearchName handles GET|POST /search/name.
func (h *Handlers) HandleSearchName(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if r.Method == http.MethodGet {
		req.fill(r.URL.Query().Get)
	} else {
		err := decodeBody(r, &req, req.fill)
		if err != nil {
			writeInvalid(w, map[string][]string{"body": {err.Error()}})
			return
		}
	}

	q, systems, invalid := req.validate()
	if len(invalid) > 0 {
		writeInvalid(w, invalid)
		return
	}

	found, errs := h.searcher.SearchName(r.Context(), q, systems...)
	writeSearch(w, found, errs)
}

type docketRequest struct {
	DocketNumber string `json:"docket_number"`
}

// HandleSearchDocket handles POST /search/docket.
func (h *Handlers) HandleSearchDocket(w http.ResponseWriter, r *http.Request) {
	var req docketRequest
	err := decodeBody(r, &req, func(get func(string) string) {
		req.DocketNumber = get("docket_number")
	})
	if err != nil {
		writeInvalid(w, map[string][]string{"body": {err.Error()}})
		return
	}
	if strings.TrimSpace(req.DocketNumber) == "" {
		writeInvalid(w, map[string][]string{"docket_number": {"This field is required."}})
		return
	}

	found, errs := h.searcher.SearchDocket(r.Context(), req.DocketNumber)
	writeSearch(w, found, errs)
}

type docketsRequest struct {
	DocketNumbers []string `json:"docket_numbers"`
}

// HandleSearchDockets handles POST /search/docket/many.
func (h *Handlers) HandleSearchDockets(w http.ResponseWriter, r *http.Request) {
	var req docketsRequest
	err := decodeBody(r, &req, func(get func(string) string) {
		for _, raw := range strings.Split(get("docket_numbers"), ",") {
			if strings.TrimSpace(raw) != "" {
				req.DocketNumbers = append(req.DocketNumbers, strings.TrimSpace(raw))
			}
		}
	})
	if err != nil {
		writeInvalid(w, map[string][]string{"body": {err.Error()}})
		return
	}
	if len(req.DocketNumbers) == 0 {
		writeInvalid(w, map[string][]string{"docket_numbers": {"This list may not be empty."}})
		return
	}

	found, errs := h.searcher.SearchDockets(r.Context(), req.DocketNumbers)
	writeSearch(w, found, errs)
}
