package authority

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/metrics"
)

// SyncResponse is the acknowledgement envelope clients check
type SyncResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewRouter builds the authority's HTTP surface. POST and PUT push a
// full record snapshot; DELETE removes by id. Every acknowledged
// mutation lets the client drop the matching outbox entry.
func NewRouter(store Store) http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)

	r.Get("/health", handleHealth())

	r.Route("/api/sync/{table}", func(r chi.Router) {
		r.Post("/", handleUpsert(store))
		r.Put("/", handleUpsert(store))
		r.Delete("/", handleDelete(store))
		r.Get("/", handleGet(store))
	})

	return r
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// recordID is the slice of the snapshot the authority needs to key it
type recordID struct {
	ID string `json:"id"`
}

func handleUpsert(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		table := chi.URLParam(r, "table")
		if !domain.SyncTables[table] {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgUnknownTable})
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil || len(payload) == 0 {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgMissingRecord})
			return
		}

		var rec recordID
		if err := json.Unmarshal(payload, &rec); err != nil || rec.ID == "" {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgInvalidPayload})
			return
		}

		if err := store.Upsert(r.Context(), table, rec.ID, payload); err != nil {
			log.Error(LogMsgUpsertFailed, "error", err, "table", table, "record_id", rec.ID)
			respond(w, http.StatusInternalServerError, SyncResponse{Error: ErrMsgStoreFailed})
			return
		}

		log.Info(LogMsgRecordUpserted, "table", table, "record_id", rec.ID, "method", r.Method)

		respond(w, http.StatusOK, SyncResponse{Success: true})
	}
}

func handleDelete(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		table := chi.URLParam(r, "table")
		if !domain.SyncTables[table] {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgUnknownTable})
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgMissingID})
			return
		}

		if err := store.Delete(r.Context(), table, id); err != nil {
			log.Error(LogMsgDeleteFailed, "error", err, "table", table, "record_id", id)
			respond(w, http.StatusInternalServerError, SyncResponse{Error: ErrMsgStoreFailed})
			return
		}

		log.Info(LogMsgRecordDeleted, "table", table, "record_id", id)

		respond(w, http.StatusOK, SyncResponse{Success: true})
	}
}

func handleGet(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := chi.URLParam(r, "table")
		if !domain.SyncTables[table] {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgUnknownTable})
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			respond(w, http.StatusBadRequest, SyncResponse{Error: ErrMsgMissingID})
			return
		}

		payload, err := store.Get(r.Context(), table, id)
		if err != nil {
			respond(w, http.StatusInternalServerError, SyncResponse{Error: ErrMsgStoreFailed})
			return
		}
		if payload == nil {
			respond(w, http.StatusNotFound, SyncResponse{Error: "not found"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}
}

func respond(w http.ResponseWriter, status int, body SyncResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
