// Package server exposes portfolio reports over HTTP.
//
// Routes:
//
//	GET /health       liveness
//	GET /api/facets   selectable values per facet
//	GET /api/report   KPIs, aggregates, charts and table for a selection
//	GET /api/export   filtered rows as CSV
//
// Selections come from the query parameters region, sector and
// finance_status; a missing or "All" parameter leaves that facet open, and an
// empty one ("?region=") selects records whose value is blank. Any other
// query parameter is rejected with 400.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/portfolio/engine"
	"github.com/spektr-org/portfolio/helpers"
	"github.com/spektr-org/portfolio/schema"
)

// Dataset supplies the cached base dataset. *helpers.Cache implements it.
type Dataset interface {
	Get(ctx context.Context) (*schema.Result, error)
}

// Server serves reports built from a shared read-only dataset.
type Server struct {
	data Dataset
	opts []engine.Option
}

// New creates a Server. opts are passed to every engine.Execute call and are
// checked here, so a bad option fails at startup instead of per request.
func New(data Dataset, opts ...engine.Option) (*Server, error) {
	if err := engine.ValidateOptions(opts...); err != nil {
		return nil, fmt.Errorf("server options: %w", err)
	}
	return &Server{data: data, opts: opts}, nil
}

// Handler returns the routed handler with request IDs attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/facets", s.handleFacets)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/export", s.handleExport)
	return withRequestID(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	res, ok := s.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.FacetIndex(res.Dataset))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	res, ok := s.dataset(w, r)
	if !ok {
		return
	}
	sel, err := SelectionFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := engine.Execute(res.Dataset, sel, s.opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	res, ok := s.dataset(w, r)
	if !ok {
		return
	}
	sel, err := SelectionFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := helpers.ToDelimitedText(engine.ApplyFilters(res.Dataset, sel))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", helpers.ExportMIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", helpers.ExportFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// SelectionFromQuery reads facet selections from URL query parameters.
// Unknown or repeated parameters are invalid arguments.
func SelectionFromQuery(r *http.Request) (engine.Selection, error) {
	sel := engine.Selection{}
	for param, values := range r.URL.Query() {
		facet, ok := queryFacets[param]
		if !ok {
			return nil, &engine.InvalidArgumentError{
				Param:   param,
				Message: "unknown query parameter (want region, sector or finance_status)",
			}
		}
		if len(values) > 1 {
			return nil, &engine.InvalidArgumentError{Param: param, Message: "given more than once"}
		}
		sel[facet] = values[0]
	}
	return sel, sel.Validate()
}

var queryFacets = map[string]engine.Field{
	"region":         engine.FieldRegion,
	"sector":         engine.FieldSector,
	"finance_status": engine.FieldFinanceStatus,
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*schema.Result, bool) {
	res, err := s.data.Get(r.Context())
	if err != nil {
		log.Printf("request %s: dataset unavailable: %v", requestID(r), err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "dataset unavailable", RequestID: requestID(r)})
		return nil, false
	}
	return res, true
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, engine.ErrInvalidArgument) {
		status = http.StatusBadRequest
	}
	log.Printf("request %s: %v", requestID(r), err)
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: requestID(r)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// ============================================================================
// REQUEST IDS
// ============================================================================

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}
