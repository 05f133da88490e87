package handler

import (
	"net/http"

	"github.com/agridesk/fieldbook/internal/dashboard"
)

// HandleDashboard returns the aggregate farm snapshot
func HandleDashboard(svc dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		stats, err := svc.Stats(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "Dashboard", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: stats})
	}
}
