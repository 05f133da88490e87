package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore mocks the canonical record store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, table, recordID string, payload json.RawMessage) error {
	args := m.Called(ctx, table, recordID, payload)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, table, recordID string) error {
	args := m.Called(ctx, table, recordID)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, table, recordID string) (json.RawMessage, error) {
	args := m.Called(ctx, table, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func TestHandleUpsert(t *testing.T) {
	t.Run("stores snapshot on POST", func(t *testing.T) {
		store := &MockStore{}
		store.On("Upsert", mock.Anything, "inventory_items", "item-1", mock.Anything).Return(nil)

		body := []byte(`{"id":"item-1","name":"Urea 46%"}`)
		req := httptest.NewRequest("POST", "/api/sync/inventory_items", bytes.NewReader(body))
		w := httptest.NewRecorder()

		NewRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		store.AssertExpectations(t)
	})

	t.Run("stores snapshot on PUT", func(t *testing.T) {
		store := &MockStore{}
		store.On("Upsert", mock.Anything, "crops", "crop-1", mock.Anything).Return(nil)

		body := []byte(`{"id":"crop-1","name":"Tomato"}`)
		req := httptest.NewRequest("PUT", "/api/sync/crops", bytes.NewReader(body))
		w := httptest.NewRecorder()

		NewRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("rejects unknown table", func(t *testing.T) {
		store := &MockStore{}

		body := []byte(`{"id":"x"}`)
		req := httptest.NewRequest("POST", "/api/sync/not_a_table", bytes.NewReader(body))
		w := httptest.NewRecorder()

		NewRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects payload without id", func(t *testing.T) {
		store := &MockStore{}

		body := []byte(`{"name":"no id here"}`)
		req := httptest.NewRequest("POST", "/api/sync/crops", bytes.NewReader(body))
		w := httptest.NewRecorder()

		NewRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDelete(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		store := &MockStore{}
		store.On("Delete", mock.Anything, "stock_logs", "log-9").Return(nil)

		req := httptest.NewRequest("DELETE", "/api/sync/stock_logs?id=log-9", nil)
		w := httptest.NewRecorder()

		NewRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		store.AssertExpectations(t)
	})

	t.Run("requires id parameter", func(t *testing.T) {
		store := &MockStore{}

		req := httptest.NewRequest("DELETE", "/api/sync/stock_logs", nil)
		w := httptest.NewRecorder()

		NewRouter(store).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleHealth(t *testing.T) {
	store := &MockStore{}

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	NewRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
