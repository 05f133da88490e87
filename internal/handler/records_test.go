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

// MockRecordsService mocks the farm records service
type MockRecordsService struct {
	mock.Mock
}

func (m *MockRecordsService) CreatePlot(ctx context.Context, plot *domain.Plot) error {
	return m.Called(ctx, plot).Error(0)
}

func (m *MockRecordsService) ListPlots(ctx context.Context, farmID string) ([]domain.Plot, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockRecordsService) CreateCrop(ctx context.Context, crop *domain.Crop) error {
	return m.Called(ctx, crop).Error(0)
}

func (m *MockRecordsService) UpdateCrop(ctx context.Context, crop *domain.Crop) error {
	return m.Called(ctx, crop).Error(0)
}

func (m *MockRecordsService) GetCrop(ctx context.Context, farmID, cropID string) (*domain.Crop, error) {
	args := m.Called(ctx, farmID, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}

func (m *MockRecordsService) ListActiveCrops(ctx context.Context, farmID string) ([]domain.Crop, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}

func (m *MockRecordsService) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockRecordsService) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockRecordsService) ListSuppliers(ctx context.Context, farmID string) ([]domain.Supplier, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func recordsRouter(svc *MockRecordsService) http.Handler {
	r := chi.NewRouter()
	r.Route("/farms/{farmID}", func(r chi.Router) {
		r.Post("/plots", HandleCreatePlot(svc))
		r.Get("/plots", HandleListPlots(svc))
		r.Post("/crops", HandleCreateCrop(svc))
		r.Get("/crops", HandleListActiveCrops(svc))
		r.Get("/crops/{cropID}", HandleGetCrop(svc))
		r.Put("/crops/{cropID}", HandleUpdateCrop(svc))
		r.Post("/expenses", HandleCreateExpense(svc))
		r.Post("/suppliers", HandleCreateSupplier(svc))
	})
	return r
}

func TestHandleCreatePlot(t *testing.T) {
	svc := new(MockRecordsService)
	svc.On("CreatePlot", mock.Anything, mock.MatchedBy(func(p *domain.Plot) bool {
		return p.FarmID == "farm-1" && p.Name == "North field" && p.SizeAcres == 4.5
	})).Return(nil)

	body, _ := json.Marshal(CreatePlotRequest{Name: "North field", SizeAcres: 4.5})
	req := httptest.NewRequest(http.MethodPost, "/farms/farm-1/plots", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreatePlot_MissingName(t *testing.T) {
	svc := new(MockRecordsService)

	body, _ := json.Marshal(CreatePlotRequest{SizeAcres: 2})
	req := httptest.NewRequest(http.MethodPost, "/farms/farm-1/plots", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreatePlot", mock.Anything, mock.Anything)
}

func TestHandleCreateCrop(t *testing.T) {
	svc := new(MockRecordsService)
	svc.On("CreateCrop", mock.Anything, mock.MatchedBy(func(c *domain.Crop) bool {
		return c.FarmID == "farm-1" && c.PlotID == "plot-1" && c.Name == "Wheat"
	})).Return(nil)

	body, _ := json.Marshal(CreateCropRequest{PlotID: "plot-1", Name: "Wheat"})
	req := httptest.NewRequest(http.MethodPost, "/farms/farm-1/crops", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleUpdateCrop_RejectsUnknownStatus(t *testing.T) {
	svc := new(MockRecordsService)

	body, _ := json.Marshal(UpdateCropRequest{PlotID: "plot-1", Name: "Wheat", Status: "composted"})
	req := httptest.NewRequest(http.MethodPut, "/farms/farm-1/crops/crop-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateCrop", mock.Anything, mock.Anything)
}

func TestHandleGetCrop_NotFound(t *testing.T) {
	svc := new(MockRecordsService)
	svc.On("GetCrop", mock.Anything, "farm-1", "missing").Return(nil, domain.ErrCropNotFound)

	req := httptest.NewRequest(http.MethodGet, "/farms/farm-1/crops/missing", nil)
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCreateExpense(t *testing.T) {
	svc := new(MockRecordsService)
	svc.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.FarmID == "farm-1" && e.Category == domain.ExpenseFuel && e.Amount == 85.0
	})).Return(nil)

	body, _ := json.Marshal(CreateExpenseRequest{Category: "fuel", Amount: 85})
	req := httptest.NewRequest(http.MethodPost, "/farms/farm-1/expenses", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreateExpense_RejectsUnknownCategory(t *testing.T) {
	svc := new(MockRecordsService)

	body, _ := json.Marshal(CreateExpenseRequest{Category: "entertainment", Amount: 85})
	req := httptest.NewRequest(http.MethodPost, "/farms/farm-1/expenses", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateExpense", mock.Anything, mock.Anything)
}

func TestHandleCreateSupplier_RejectsBadEmail(t *testing.T) {
	svc := new(MockRecordsService)

	body, _ := json.Marshal(CreateSupplierRequest{Name: "AgroSupply Ltd", Email: "not-an-email"})
	req := httptest.NewRequest(http.MethodPost, "/farms/farm-1/suppliers", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateSupplier", mock.Anything, mock.Anything)
}

func TestHandleListPlots(t *testing.T) {
	svc := new(MockRecordsService)
	svc.On("ListPlots", mock.Anything, "farm-1").Return([]domain.Plot{
		{ID: "plot-1", FarmID: "farm-1", Name: "North field"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/farms/farm-1/plots", nil)
	rec := httptest.NewRecorder()
	recordsRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "North field")
}
