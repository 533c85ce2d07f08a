package rest

import (
	"net/http"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

type itemLister interface {
	Items() []domain.StudyItem
}

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	items   itemLister
	version string
}

func NewHealthHandler(items itemLister, version string) *HealthHandler {
	return &HealthHandler{items: items, version: version}
}

// Register mounts the health routes on mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

// Live always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready returns 200 once at least one item is loaded and 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if len(h.items.Items()) == 0 {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health reports the loaded decks with item counts per kind and the build
// version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	items := h.items.Items()

	counts := make(map[domain.ItemKind]int)
	for _, item := range items {
		counts[item.Kind()]++
	}

	components := map[string]CompStatus{
		"decks": {Status: "ok", Items: len(items)},
	}
	for kind, n := range counts {
		components[kind.String()] = CompStatus{Status: "ok", Items: n}
	}

	status, code := "ok", http.StatusOK
	if len(items) == 0 {
		status, code = "down", http.StatusServiceUnavailable
		components["decks"] = CompStatus{Status: "down"}
	}

	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
