package handlers

import (
	"log"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "up", Timestamp: time.Now().UTC()}

	if h.DB == nil {
		resp.Status, resp.Database = "degraded", "unconfigured"
		writeSuccess(w, resp, http.StatusServiceUnavailable)
		return
	}

	if err := h.DB.HealthCheck(r.Context()); err != nil {
		log.Printf("health check failed: %v", err)
		resp.Status, resp.Database = "degraded", "down"
		writeSuccess(w, resp, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, resp, http.StatusOK)
}
