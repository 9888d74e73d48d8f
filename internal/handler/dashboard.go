package handler

import (
	"net/http"

	"github.com/ordesk/backoffice/internal/domain/dashboard"
)

// DashboardStats returns the point-in-time aggregate counts and the completed
// revenue sum. An empty dataset yields zeros; unreachable storage degrades to
// zeros the same way list reads degrade to empty.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Stats(r.Context())
	if err != nil {
		if degradeRead(r, err) {
			respondJSON(w, http.StatusOK, dashboard.Stats{})
			return
		}
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}
