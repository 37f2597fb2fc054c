package api

import (
	"net/http"

	"github.com/samhotchkiss/sindicato-comms/internal/metrics"
)

// handleMetrics handles GET /api/metrics
func handleMetrics(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, metrics.SnapshotNow())
}
