package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agridesk/fieldbook/internal/logger"
	syncpkg "github.com/agridesk/fieldbook/internal/sync"
)

type SyncStatusResponse struct {
	Online       bool `json:"online"`
	PendingCount int  `json:"pending_count"`
}

// HandleSyncStatus reports connectivity and outbox depth
func HandleSyncStatus(svc syncpkg.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		count, err := svc.PendingCount(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "Sync status", err)
			return
		}

		respondJSON(w, http.StatusOK, SyncStatusResponse{
			Online:       svc.Online(),
			PendingCount: count,
		})
	}
}

// HandleListPending returns the queued mutations for a farm
func HandleListPending(svc syncpkg.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		entries, err := svc.ListPending(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "List pending", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// HandleDrain triggers a manual sync attempt, optionally scoped to one
// farm via ?farm_id=. A drain already in flight, or an offline engine,
// yields an empty outcome list.
func HandleDrain(svc syncpkg.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		farmID := GetOptionalQueryParam(r, "farm_id", "")
		outcomes, err := svc.Drain(r.Context(), farmID)
		if err != nil {
			log.Error(ErrMsgDrainFailed, "error", err)
			respondServiceError(w, r, "Drain", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: outcomes})
	}
}

type ResolveConflictRequest struct {
	Table          string          `json:"table_name" validate:"required,synctable"`
	RecordID       string          `json:"record_id" validate:"required"`
	ServerSnapshot json.RawMessage `json:"server_snapshot" validate:"required"`
}

// HandleResolveConflict settles a conflicted record last-write-wins
func HandleResolveConflict(svc syncpkg.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ResolveConflictRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Resolve conflict"); err != nil {
			return
		}

		resolution, err := svc.ResolveConflict(r.Context(), req.Table, req.RecordID, req.ServerSnapshot)
		if err != nil {
			log.Error(ErrMsgResolveConflictFailed, "error", err, "table", req.Table, "record_id", req.RecordID)
			respondServiceError(w, r, "Resolve conflict", err)
			return
		}

		log.Info("Conflict resolved",
			"table", req.Table,
			"record_id", req.RecordID,
			"winner", resolution.Winner)

		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf(MsgConflictResolvedFormat, resolution.Winner),
			Data:    resolution,
		})
	}
}
