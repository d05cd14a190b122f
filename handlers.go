package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mockapi/internal/auth"
	"mockapi/internal/mockgen"
	"mockapi/internal/store"
)

// maxConfigBody caps the size of a schema upload.
const maxConfigBody = 1 << 20

// Handler handles HTTP requests for mock endpoints.
type Handler struct {
	store        store.Store
	engine       *mockgen.Engine
	logger       *slog.Logger
	metrics      *metrics
	defaultCount int
}

// NewHandler creates a Handler with dependencies.
func NewHandler(s store.Store, engine *mockgen.Engine, logger *slog.Logger, m *metrics, defaultCount int) *Handler {
	return &Handler{store: s, engine: engine, logger: logger, metrics: m, defaultCount: defaultCount}
}

// subject returns the authenticated subject, or writes a 401.
func (h *Handler) subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := auth.SubjectFrom(r.Context())
	if !ok {
		h.writeError(w, r, auth.ErrUnauthenticated)
	}
	return subject, ok
}

// handleGetRecords processes GET /{endpoint}.
func (h *Handler) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	endpoint := chi.URLParam(r, "endpoint")

	fields, err := h.store.Load(r.Context(), subject, endpoint)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("load schema %q: %w", endpoint, err))
		return
	}

	q := mockgen.ParseQuery(r.URL.Query(), h.defaultCount)
	res := h.engine.Run(endpoint, fields, q)
	h.metrics.recordsGenerated.Add(float64(len(res.Data)))
	h.logger.DebugContext(r.Context(), "records generated",
		"subject", subject, "endpoint", endpoint,
		"count", res.Pagination.Count, "filters", len(q.Filters))

	render.JSON(w, r, res)
}

// handleSaveConfig processes POST /{endpoint}/config.
func (h *Handler) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	endpoint := chi.URLParam(r, "endpoint")
	if err := mockgen.ValidateEndpoint(endpoint); err != nil {
		h.writeError(w, r, err)
		return
	}

	var req SaveConfigRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxConfigBody))
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid request payload: %v", ErrInvalidInput, err))
		return
	}
	if err := ensureSingleJSON(dec); err != nil {
		h.writeError(w, r, err)
		return
	}
	fields, err := req.DecodeFields()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	fields = mockgen.NormalizeFields(fields)
	if err := mockgen.ValidateFields(fields); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.store.Save(r.Context(), subject, endpoint, fields); err != nil {
		h.writeError(w, r, fmt.Errorf("save schema %q: %w", endpoint, err))
		return
	}
	h.metrics.schemasSaved.Inc()
	h.logger.InfoContext(r.Context(), "schema saved",
		"subject", subject, "endpoint", endpoint, "fields", len(fields))

	render.JSON(w, r, SuccessResponse{Success: true})
}

// handleGetConfig processes GET /{endpoint}/config.
func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	endpoint := chi.URLParam(r, "endpoint")
	fields, err := h.store.Load(r.Context(), subject, endpoint)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("load schema %q: %w", endpoint, err))
		return
	}
	render.JSON(w, r, ConfigResponse{Endpoint: endpoint, Fields: fields})
}

// handleListEndpoints processes GET /.
func (h *Handler) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	subject, ok := h.subject(w, r)
	if !ok {
		return
	}
	names, err := h.store.List(r.Context(), subject)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("list endpoints: %w", err))
		return
	}
	if names == nil {
		names = []string{}
	}
	render.JSON(w, r, EndpointsResponse{Endpoints: names})
}

// handleHealth answers the liveness probe.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{Status: "ok"})
}

// handlePreflight answers OPTIONS requests that did not carry CORS
// preflight headers.
func handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusNoContent)
}

// ensureSingleJSON ensures only a single JSON object is in the request body.
func ensureSingleJSON(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: request body must only contain a single JSON object", ErrInvalidInput)
	}
	return nil
}
