// Package httpapi exposes the assistant over JSON/HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/doeshing/aiagent-go/internal/application/assistant"
	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// HealthReporter produces the /health payload.
type HealthReporter interface {
	Run(ctx context.Context) (domain.HealthReport, error)
}

// API handles HTTP requests for queries, executions and read-only state.
type API struct {
	Agent     *assistant.Agent
	Knowledge ports.KnowledgeRepository
	Learning  ports.LearningInspector
	Health    HealthReporter
	Logger    ports.Logger
}

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is returned by POST /api/v1/query.
type QueryResponse struct {
	Response string `json:"response"`
}

// ExecuteRequest is the body of POST /api/v1/execute.
type ExecuteRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers the API routes.
func (api *API) RegisterRoutes(router *mux.Router) {
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/query", api.handleQuery).Methods(http.MethodPost)
	v1.HandleFunc("/execute", api.handleExecute).Methods(http.MethodPost)
	v1.HandleFunc("/knowledge", api.handleKnowledge).Methods(http.MethodGet)
	v1.HandleFunc("/learning", api.handleLearning).Methods(http.MethodGet)
	v1.HandleFunc("/health", api.handleHealth).Methods(http.MethodGet)
}

// Router returns a router with every route registered.
func (api *API) Router() *mux.Router {
	router := mux.NewRouter()
	api.RegisterRoutes(router)
	router.Use(api.logRequests)
	return router
}

func (api *API) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, "query is required", http.StatusBadRequest)
		return
	}
	resp := assistant.AwaitQuery(r.Context(), api.Agent.ProcessQuery(r.Context(), req.Query))
	writeJSON(w, http.StatusOK, QueryResponse{Response: resp})
}

func (api *API) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res := assistant.AwaitExecution(r.Context(), api.Agent.ExecuteCode(r.Context(), req.Code, req.Language))
	writeJSON(w, http.StatusOK, res)
}

func (api *API) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	if api.Knowledge == nil {
		writeJSON(w, http.StatusOK, []domain.KnowledgeEntry{})
		return
	}
	entries := api.Knowledge.Entries()
	if search := r.URL.Query().Get("q"); search != "" {
		if resp, ok := api.Knowledge.Search(search); ok {
			entries = []domain.KnowledgeEntry{{Query: search, Response: resp}}
		} else {
			entries = []domain.KnowledgeEntry{}
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (api *API) handleLearning(w http.ResponseWriter, _ *http.Request) {
	if api.Learning == nil {
		writeError(w, "learning engine not configured", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, api.Learning.Snapshot())
}

func (api *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if api.Health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.HealthOK)})
		return
	}
	report, err := api.Health.Run(r.Context())
	status := http.StatusOK
	if err != nil || !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (api *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if api.Logger != nil {
			api.Logger.Debug("http request", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// Serve runs the API on addr until ctx is cancelled, then shuts down within
// grace.
func Serve(ctx context.Context, addr string, handler http.Handler, grace time.Duration, log ports.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http api listening", map[string]interface{}{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("http api stopped", nil)
	return nil
}
