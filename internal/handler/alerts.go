package handler

import (
	"net/http"

	"github.com/agridesk/fieldbook/internal/alert"
	"github.com/agridesk/fieldbook/internal/logger"
)

const defaultRecentAlerts = 20

// HandleListUnreadAlerts returns every unread alert for a farm
func HandleListUnreadAlerts(svc alert.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		alerts, err := svc.ListUnread(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "List unread alerts", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: alerts})
	}
}

// HandleListRecentAlerts returns recent alerts regardless of read state
func HandleListRecentAlerts(svc alert.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		limit, ok := GetLimitParam(r, w, defaultRecentAlerts)
		if !ok {
			return
		}

		alerts, err := svc.ListRecent(r.Context(), farmID, limit)
		if err != nil {
			respondServiceError(w, r, "List recent alerts", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: alerts})
	}
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// HandleCountUnreadAlerts returns the unread alert count for the badge
func HandleCountUnreadAlerts(svc alert.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		count, err := svc.CountUnread(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "Count unread alerts", err)
			return
		}

		respondJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
	}
}

// HandleMarkAlertRead marks one alert as read
func HandleMarkAlertRead(svc alert.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		alertID, ok := GetURLParam(r, w, "alertID")
		if !ok {
			return
		}

		if err := svc.MarkRead(r.Context(), alertID); err != nil {
			log.Error(ErrMsgMarkReadFailed, "error", err, "alert_id", alertID)
			respondServiceError(w, r, "Mark alert read", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAlertMarkedRead})
	}
}

// HandleCheckAlerts runs every persisted rule for a farm on demand
func HandleCheckAlerts(svc alert.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		raised, err := svc.CheckAllAlerts(r.Context(), farmID)
		if err != nil {
			log.Error(ErrMsgCheckAlertsFailed, "error", err, "farm_id", farmID)
			respondServiceError(w, r, "Check alerts", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: raised})
	}
}
