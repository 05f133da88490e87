package handler

import (
	"net/http"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/records"
)

type CreatePlotRequest struct {
	Name      string  `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	SizeAcres float64 `json:"size_acres" validate:"min=0"`
	Notes     string  `json:"notes" validate:"max=500"`
}

// HandleCreatePlot registers a new plot for a farm
func HandleCreatePlot(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		var req CreatePlotRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create plot"); err != nil {
			return
		}

		plot := &domain.Plot{
			FarmID:    farmID,
			Name:      req.Name,
			SizeAcres: req.SizeAcres,
			Notes:     req.Notes,
		}
		if err := svc.CreatePlot(r.Context(), plot); err != nil {
			respondServiceError(w, r, "Create plot", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgPlotCreatedSuccess, Data: plot})
	}
}

// HandleListPlots returns every plot of a farm
func HandleListPlots(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		plots, err := svc.ListPlots(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "List plots", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: plots})
	}
}

type CreateCropRequest struct {
	PlotID                string     `json:"plot_id" validate:"required"`
	Name                  string     `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Variety               string     `json:"variety" validate:"max=100"`
	PlantingDate          time.Time  `json:"planting_date"`
	ExpectedHarvestDate   *time.Time `json:"expected_harvest_date"`
	FertilizerStageDate   *time.Time `json:"fertilizer_stage_date"`
	PesticideIntervalDays int        `json:"pesticide_interval_days" validate:"min=0"`
}

// HandleCreateCrop registers a planting on a plot
func HandleCreateCrop(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		var req CreateCropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create crop"); err != nil {
			return
		}

		crop := &domain.Crop{
			FarmID:                farmID,
			PlotID:                req.PlotID,
			Name:                  req.Name,
			Variety:               req.Variety,
			PlantingDate:          req.PlantingDate,
			ExpectedHarvestDate:   req.ExpectedHarvestDate,
			FertilizerStageDate:   req.FertilizerStageDate,
			PesticideIntervalDays: req.PesticideIntervalDays,
		}
		if err := svc.CreateCrop(r.Context(), crop); err != nil {
			log.Error(ErrMsgCreateCropFailed, "error", err, "farm_id", farmID, "plot_id", req.PlotID)
			respondServiceError(w, r, "Create crop", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgCropCreatedSuccess, Data: crop})
	}
}

type UpdateCropRequest struct {
	PlotID                string     `json:"plot_id" validate:"required"`
	Name                  string     `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Variety               string     `json:"variety" validate:"max=100"`
	PlantingDate          time.Time  `json:"planting_date"`
	ExpectedHarvestDate   *time.Time `json:"expected_harvest_date"`
	Status                string     `json:"status" validate:"required,oneof=planted growing harvested"`
	FertilizerStageDate   *time.Time `json:"fertilizer_stage_date"`
	PesticideIntervalDays int        `json:"pesticide_interval_days" validate:"min=0"`
	LastPesticideDate     *time.Time `json:"last_pesticide_date"`
}

// HandleUpdateCrop replaces the mutable fields of a crop
func HandleUpdateCrop(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		cropID, ok := GetURLParam(r, w, "cropID")
		if !ok {
			return
		}

		var req UpdateCropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update crop"); err != nil {
			return
		}

		crop := &domain.Crop{
			ID:                    cropID,
			FarmID:                farmID,
			PlotID:                req.PlotID,
			Name:                  req.Name,
			Variety:               req.Variety,
			PlantingDate:          req.PlantingDate,
			ExpectedHarvestDate:   req.ExpectedHarvestDate,
			Status:                domain.CropStatus(req.Status),
			FertilizerStageDate:   req.FertilizerStageDate,
			PesticideIntervalDays: req.PesticideIntervalDays,
			LastPesticideDate:     req.LastPesticideDate,
		}
		if err := svc.UpdateCrop(r.Context(), crop); err != nil {
			respondServiceError(w, r, "Update crop", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgCropUpdatedSuccess, Data: crop})
	}
}

// HandleGetCrop returns one crop
func HandleGetCrop(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		cropID, ok := GetURLParam(r, w, "cropID")
		if !ok {
			return
		}

		crop, err := svc.GetCrop(r.Context(), farmID, cropID)
		if err != nil {
			respondServiceError(w, r, "Get crop", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: crop})
	}
}

// HandleListActiveCrops returns planted and growing crops for a farm
func HandleListActiveCrops(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		crops, err := svc.ListActiveCrops(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "List crops", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: crops})
	}
}

type CreateExpenseRequest struct {
	ItemID          string    `json:"item_id"`
	Category        string    `json:"category" validate:"required,oneof=seeds fertilizers pesticides equipment fuel labor other"`
	Amount          float64   `json:"amount" validate:"gt=0"`
	Date            time.Time `json:"date"`
	SupplierID      string    `json:"supplier_id"`
	Description     string    `json:"description" validate:"max=500"`
	ReceiptPhotoURL string    `json:"receipt_photo_url" validate:"max=500"`
}

// HandleCreateExpense records a cost entry
func HandleCreateExpense(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		var req CreateExpenseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create expense"); err != nil {
			return
		}

		expense := &domain.Expense{
			FarmID:          farmID,
			ItemID:          req.ItemID,
			Category:        domain.ExpenseCategory(req.Category),
			Amount:          req.Amount,
			Date:            req.Date,
			SupplierID:      req.SupplierID,
			Description:     req.Description,
			ReceiptPhotoURL: req.ReceiptPhotoURL,
		}
		if err := svc.CreateExpense(r.Context(), expense); err != nil {
			respondServiceError(w, r, "Create expense", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgExpenseRecordedOK, Data: expense})
	}
}

type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Contact string `json:"contact" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email,max=100"`
	Address string `json:"address" validate:"max=200"`
	Rating  int    `json:"rating" validate:"min=0,max=5"`
}

// HandleCreateSupplier registers a vendor
func HandleCreateSupplier(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		var req CreateSupplierRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create supplier"); err != nil {
			return
		}

		supplier := &domain.Supplier{
			FarmID:  farmID,
			Name:    req.Name,
			Contact: req.Contact,
			Email:   req.Email,
			Address: req.Address,
			Rating:  req.Rating,
		}
		if err := svc.CreateSupplier(r.Context(), supplier); err != nil {
			respondServiceError(w, r, "Create supplier", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgSupplierCreatedOK, Data: supplier})
	}
}

// HandleListSuppliers returns the farm's vendors
func HandleListSuppliers(svc records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		suppliers, err := svc.ListSuppliers(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "List suppliers", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: suppliers})
	}
}
