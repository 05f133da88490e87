package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agridesk/fieldbook/internal/domain"
)

// MockStockService mocks the stock service
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockService) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockService) GetItem(ctx context.Context, farmID, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockStockService) ListItems(ctx context.Context, farmID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockStockService) RecordMovement(ctx context.Context, log *domain.StockLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockStockService) CurrentStock(ctx context.Context, farmID, itemID string) (*domain.CurrentStock, error) {
	args := m.Called(ctx, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentStock), args.Error(1)
}

func (m *MockStockService) CurrentStockAll(ctx context.Context, farmID string) ([]domain.CurrentStock, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrentStock), args.Error(1)
}

func (m *MockStockService) ListMovements(ctx context.Context, farmID, itemID string) ([]domain.StockLog, error) {
	args := m.Called(ctx, farmID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLog), args.Error(1)
}

// stockRouter mounts the stock handlers the way the server does so URL
// parameters resolve in tests
func stockRouter(svc *MockStockService) http.Handler {
	r := chi.NewRouter()
	r.Route("/farms/{farmID}", func(r chi.Router) {
		r.Post("/stock/movements", HandleRecordMovement(svc))
		r.Get("/stock", HandleCurrentStockAll(svc))
		r.Get("/stock/{itemID}", HandleCurrentStock(svc))
		r.Get("/items", HandleListItems(svc))
	})
	return r
}

func TestHandleRecordMovement(t *testing.T) {
	t.Run("records valid movement", func(t *testing.T) {
		svc := &MockStockService{}
		svc.On("RecordMovement", mock.Anything, mock.MatchedBy(func(l *domain.StockLog) bool {
			return l.FarmID == "farm-1" && l.ItemID == "item-1" && l.Type == domain.MovementIn && l.Quantity == 50
		})).Return(nil)

		body, _ := json.Marshal(RecordMovementRequest{
			ItemID:   "item-1",
			Type:     "in",
			Quantity: 50,
		})
		req := httptest.NewRequest("POST", "/farms/farm-1/stock/movements", bytes.NewReader(body))
		w := httptest.NewRecorder()

		stockRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), MsgMovementRecordedOK)
		svc.AssertExpectations(t)
	})

	t.Run("rejects insufficient stock", func(t *testing.T) {
		svc := &MockStockService{}
		svc.On("RecordMovement", mock.Anything, mock.Anything).Return(domain.ErrInsufficientStock)

		body, _ := json.Marshal(RecordMovementRequest{
			ItemID:   "item-1",
			Type:     "out",
			Quantity: 500,
		})
		req := httptest.NewRequest("POST", "/farms/farm-1/stock/movements", bytes.NewReader(body))
		w := httptest.NewRecorder()

		stockRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientStockError)
	})

	t.Run("rejects invalid body without calling service", func(t *testing.T) {
		svc := &MockStockService{}

		req := httptest.NewRequest("POST", "/farms/farm-1/stock/movements", bytes.NewReader([]byte(`{"quantity":`)))
		w := httptest.NewRecorder()

		stockRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown movement type", func(t *testing.T) {
		svc := &MockStockService{}

		body, _ := json.Marshal(RecordMovementRequest{
			ItemID:   "item-1",
			Type:     "sideways",
			Quantity: 5,
		})
		req := httptest.NewRequest("POST", "/farms/farm-1/stock/movements", bytes.NewReader(body))
		w := httptest.NewRecorder()

		stockRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Must be 'in' or 'out'")
		svc.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything)
	})
}

func TestHandleCurrentStock(t *testing.T) {
	svc := &MockStockService{}
	svc.On("CurrentStock", mock.Anything, "farm-1", "item-1").Return(&domain.CurrentStock{
		ItemID:          "item-1",
		ItemName:        "Urea 46%",
		CurrentQuantity: 35,
		MinThreshold:    40,
		IsLowStock:      true,
	}, nil)

	req := httptest.NewRequest("GET", "/farms/farm-1/stock/item-1", nil)
	w := httptest.NewRecorder()

	stockRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current_quantity":35`)
	assert.Contains(t, w.Body.String(), `"is_low_stock":true`)
	svc.AssertExpectations(t)
}

func TestHandleCurrentStock_ItemNotFound(t *testing.T) {
	svc := &MockStockService{}
	svc.On("CurrentStock", mock.Anything, "farm-1", "nope").Return(nil, domain.ErrItemNotFound)

	req := httptest.NewRequest("GET", "/farms/farm-1/stock/nope", nil)
	w := httptest.NewRecorder()

	stockRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgItemNotFoundError)
}
