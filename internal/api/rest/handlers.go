package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fortuna/ratingsync/internal/pipeline"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc *pipeline.Service
}

// NewHandler creates a new handler
func NewHandler(svc *pipeline.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ratingsync",
	})
}

// GetReport returns the latest reconciled report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.svc.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "No report available yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

// GetPlayers returns just the player list of the latest report
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.svc.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "No report available yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"club":    rep.Club,
		"players": rep.Players,
		"count":   len(rep.Players),
	})
}

// GetStatus returns run state and reconciliation metrics
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Status())
}

// TriggerRefresh starts a background reconciliation run. The run
// outlives the request, so it is not tied to the request context.
func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RefreshAsync(context.Background()); err != nil {
		respondError(w, http.StatusConflict, "Refresh not started", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Refresh started",
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
