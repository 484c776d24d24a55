package handlers

import (
	"net/http"
)

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.ComputeStats(r.Context())
	if err != nil {
		writeServiceError(w, err, "Not found")
		return
	}

	writeData(w, stats, "", http.StatusOK)
}

func (h *Handlers) RecentActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.StatsService.RecentActivity(r.Context())
	if err != nil {
		writeServiceError(w, err, "Not found")
		return
	}

	writeList(w, activity, len(activity))
}
