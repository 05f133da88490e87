package handler

import (
	"net/http"
	"time"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/usage"
)

type RecordUsageRequest struct {
	PlotID            string    `json:"plot_id" validate:"required"`
	CropID            string    `json:"crop_id" validate:"required"`
	ItemID            string    `json:"item_id" validate:"required"`
	QuantityUsed      float64   `json:"quantity_used" validate:"gt=0"`
	UsageDate         time.Time `json:"usage_date"`
	UsageTime         string    `json:"usage_time" validate:"max=20"`
	ApplicationMethod string    `json:"application_method" validate:"max=50"`
	RainProbability   int       `json:"rain_probability" validate:"min=0,max=100"`
	WeatherCondition  string    `json:"weather_condition" validate:"max=100"`
	Temperature       float64   `json:"temperature"`
	Notes             string    `json:"notes" validate:"max=500"`
}

// HandleRecordUsage records a field application and spends the stock
func HandleRecordUsage(svc usage.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		var req RecordUsageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record usage"); err != nil {
			return
		}

		entry := &domain.FieldUsageLog{
			FarmID:            farmID,
			PlotID:            req.PlotID,
			CropID:            req.CropID,
			ItemID:            req.ItemID,
			QuantityUsed:      req.QuantityUsed,
			UsageDate:         req.UsageDate,
			UsageTime:         req.UsageTime,
			ApplicationMethod: domain.ApplicationMethod(req.ApplicationMethod),
			RainProbability:   req.RainProbability,
			WeatherCondition:  req.WeatherCondition,
			Temperature:       req.Temperature,
			Notes:             req.Notes,
		}

		result, err := svc.RecordUsage(r.Context(), entry)
		if err != nil {
			log.Error(ErrMsgRecordUsageFailed, "error", err, "farm_id", farmID, "item_id", req.ItemID)
			respondServiceError(w, r, "Record usage", err)
			return
		}

		log.Info("Field usage recorded",
			"farm_id", farmID,
			"plot_id", req.PlotID,
			"item_id", req.ItemID,
			"quantity", req.QuantityUsed)

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgUsageRecordedOK, Data: result})
	}
}

// HandleListUsage returns recent field usage entries for a farm
func HandleListUsage(svc usage.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}
		limit, ok := GetLimitParam(r, w, usage.DefaultRecentLimit)
		if !ok {
			return
		}

		entries, err := svc.ListRecent(r.Context(), farmID, limit)
		if err != nil {
			respondServiceError(w, r, "List usage", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
