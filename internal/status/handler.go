// Package status serves the trader's health check and Prometheus metrics.
package status

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rickgao/emoji-trader/internal/bootstrap"
)

// HealthPath is where the health check is mounted.
const HealthPath = "/healthz"

// Progress reports bootstrap progress. *bootstrap.Sequencer satisfies it.
type Progress interface {
	State() bootstrap.State
	TeamID() string
}

// Handler serves the health check.
type Handler struct {
	progress Progress
}

// NewHandler creates a health handler that reports on progress.
func NewHandler(progress Progress) *Handler {
	return &Handler{progress: progress}
}

// Register mounts the health check route on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get(HealthPath, h.HandleHealth)
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
	TeamID string `json:"team_id"`
}

// HandleHealth returns 200 once the bootstrap is ready and 503 before that or
// after it aborted.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	state := h.progress.State()
	resp := HealthResponse{
		Status: healthStatus(state),
		State:  state.String(),
		TeamID: h.progress.TeamID(),
	}

	code := http.StatusServiceUnavailable
	if state == bootstrap.StateReady {
		code = http.StatusOK
	}
	writeJSON(w, code, resp)
}

func healthStatus(state bootstrap.State) string {
	switch state {
	case bootstrap.StateReady:
		return "healthy"
	case bootstrap.StateAborted:
		return "unhealthy"
	default:
		return "starting"
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
