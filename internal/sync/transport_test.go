package sync_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agridesk/fieldbook/internal/domain"
	syncpkg "github.com/agridesk/fieldbook/internal/sync"
)

func TestHTTPTransport_MethodsPerOperation(t *testing.T) {
	type captured struct {
		method string
		path   string
		query  string
		body   string
	}

	var last captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last = captured{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	transport := syncpkg.NewHTTPTransport(srv.URL, srv.Client())
	ctx := context.Background()

	tests := []struct {
		name       string
		op         domain.SyncOperation
		wantMethod string
		wantQuery  string
		wantBody   string
	}{
		{name: "create posts payload", op: domain.SyncOpCreate, wantMethod: http.MethodPost, wantBody: `{"id":"crop-1"}`},
		{name: "update puts payload", op: domain.SyncOpUpdate, wantMethod: http.MethodPut, wantBody: `{"id":"crop-1"}`},
		{name: "delete sends id in query", op: domain.SyncOpDelete, wantMethod: http.MethodDelete, wantQuery: "id=crop-1", wantBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &domain.SyncQueueEntry{
				TableName: "crops",
				RecordID:  "crop-1",
				Operation: tt.op,
				Payload:   json.RawMessage(`{"id":"crop-1"}`),
			}
			require.NoError(t, transport.Deliver(ctx, entry))
			assert.Equal(t, tt.wantMethod, last.method)
			assert.Equal(t, "/api/sync/crops", last.path)
			assert.Equal(t, tt.wantQuery, last.query)
			assert.Equal(t, tt.wantBody, last.body)
		})
	}
}

func TestHTTPTransport_ServerErrorIsDeliveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	transport := syncpkg.NewHTTPTransport(srv.URL, srv.Client())

	err := transport.Deliver(context.Background(), &domain.SyncQueueEntry{
		TableName: "crops",
		RecordID:  "crop-1",
		Operation: domain.SyncOpCreate,
		Payload:   json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestHTTPTransport_UnreachableHostIsDeliveryFailure(t *testing.T) {
	transport := syncpkg.NewHTTPTransport("http://127.0.0.1:1", nil)

	err := transport.Deliver(context.Background(), &domain.SyncQueueEntry{
		TableName: "crops",
		RecordID:  "crop-1",
		Operation: domain.SyncOpCreate,
		Payload:   json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestHTTPTransport_RejectsUnknownTable(t *testing.T) {
	transport := syncpkg.NewHTTPTransport("http://localhost", nil)

	err := transport.Deliver(context.Background(), &domain.SyncQueueEntry{
		TableName: "users",
		Operation: domain.SyncOpCreate,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownTable)
}
