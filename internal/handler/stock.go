package handler

import (
	"net/http"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/stock"
)

type CreateItemRequest struct {
	FarmID       string  `json:"farm_id" validate:"required"`
	Name         string  `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Category     string  `json:"category" validate:"required,max=50"`
	Unit         string  `json:"unit" validate:"required,max=20"`
	MinThreshold float64 `json:"min_threshold" validate:"min=0"`
	Description  string  `json:"description" validate:"max=500"`
}

// HandleCreateItem registers a new inventory item
func HandleCreateItem(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
			return
		}

		item := &domain.InventoryItem{
			FarmID:       req.FarmID,
			Name:         req.Name,
			Category:     domain.InventoryCategory(req.Category),
			Unit:         domain.Unit(req.Unit),
			MinThreshold: req.MinThreshold,
			Description:  req.Description,
		}

		if err := svc.CreateItem(r.Context(), item); err != nil {
			log.Error(ErrMsgCreateItemFailed, "error", err, "farm_id", req.FarmID, "name", req.Name)
			respondServiceError(w, r, "Create item", err)
			return
		}

		log.Info("Item created", "farm_id", req.FarmID, "item_id", item.ID, "name", item.Name)

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgItemCreatedSuccess, Data: item})
	}
}

type UpdateItemRequest struct {
	Name         string  `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Category     string  `json:"category" validate:"required,max=50"`
	Unit         string  `json:"unit" validate:"required,max=20"`
	MinThreshold float64 `json:"min_threshold" validate:"min=0"`
	Description  string  `json:"description" validate:"max=500"`
}

// HandleUpdateItem updates item metadata
func HandleUpdateItem(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		itemID, ok := GetURLParam(r, w, "itemID")
		if !ok {
			return
		}

		var req UpdateItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
			return
		}

		item := &domain.InventoryItem{
			ID:           itemID,
			FarmID:       farmID,
			Name:         req.Name,
			Category:     domain.InventoryCategory(req.Category),
			Unit:         domain.Unit(req.Unit),
			MinThreshold: req.MinThreshold,
			Description:  req.Description,
		}

		if err := svc.UpdateItem(r.Context(), item); err != nil {
			log.Error(ErrMsgUpdateItemFailed, "error", err, "item_id", itemID)
			respondServiceError(w, r, "Update item", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgItemUpdatedSuccess, Data: item})
	}
}

// HandleGetItem returns one inventory item
func HandleGetItem(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		itemID, ok := GetURLParam(r, w, "itemID")
		if !ok {
			return
		}

		item, err := svc.GetItem(r.Context(), farmID, itemID)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: item})
	}
}

// HandleListItems returns every inventory item of a farm
func HandleListItems(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		items, err := svc.ListItems(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "List items", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

type RecordMovementRequest struct {
	ItemID        string     `json:"item_id" validate:"required"`
	Type          string     `json:"type" validate:"required,movementtype"`
	Quantity      float64    `json:"quantity" validate:"gt=0"`
	Date          time.Time  `json:"date"`
	BatchNumber   string     `json:"batch_number" validate:"max=100"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	PurchasePrice float64    `json:"purchase_price" validate:"min=0"`
	SupplierID    string     `json:"supplier_id"`
	Notes         string     `json:"notes" validate:"max=500"`
}

// HandleRecordMovement appends one stock movement to the ledger
func HandleRecordMovement(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		var req RecordMovementRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record movement"); err != nil {
			return
		}

		entry := &domain.StockLog{
			FarmID:        farmID,
			ItemID:        req.ItemID,
			Type:          domain.MovementType(req.Type),
			Quantity:      req.Quantity,
			Date:          req.Date,
			BatchNumber:   req.BatchNumber,
			ExpiryDate:    req.ExpiryDate,
			PurchasePrice: req.PurchasePrice,
			SupplierID:    req.SupplierID,
			Notes:         req.Notes,
		}

		if err := svc.RecordMovement(r.Context(), entry); err != nil {
			log.Error(ErrMsgRecordMovementFail, "error", err, "farm_id", farmID, "item_id", req.ItemID)
			respondServiceError(w, r, "Record movement", err)
			return
		}

		log.Info("Stock movement recorded",
			"farm_id", farmID,
			"item_id", req.ItemID,
			"type", req.Type,
			"quantity", req.Quantity)

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgMovementRecordedOK, Data: entry})
	}
}

// HandleCurrentStock folds the ledger for one item
func HandleCurrentStock(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		itemID, ok := GetURLParam(r, w, "itemID")
		if !ok {
			return
		}

		current, err := svc.CurrentStock(r.Context(), farmID, itemID)
		if err != nil {
			respondServiceError(w, r, "Current stock", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: current})
	}
}

// HandleCurrentStockAll folds the ledger for every item of a farm
func HandleCurrentStockAll(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		stocks, err := svc.CurrentStockAll(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "Current stock all", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: stocks})
	}
}

// HandleListMovements returns the movement history for one item
func HandleListMovements(svc stock.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		itemID, ok := GetURLParam(r, w, "itemID")
		if !ok {
			return
		}

		logs, err := svc.ListMovements(r.Context(), farmID, itemID)
		if err != nil {
			respondServiceError(w, r, "List movements", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: logs})
	}
}
