package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agridesk/fieldbook/internal/domain"
	"github.com/agridesk/fieldbook/internal/logger"
	"github.com/agridesk/fieldbook/internal/repository"
)

type CreateFarmRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Location string `json:"location" validate:"max=200"`
}

// HandleCreateFarm registers a new farm
func HandleCreateFarm(repo repository.Farms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateFarmRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create farm"); err != nil {
			return
		}

		now := time.Now().UTC()
		farm := &domain.Farm{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			Name:      req.Name,
			Location:  req.Location,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := repo.InsertFarm(r.Context(), farm); err != nil {
			log.Error(ErrMsgCreateFarmFailed, "error", err, "name", req.Name)
			respondServiceError(w, r, "Create farm", err)
			return
		}

		log.Info("Farm created", "farm_id", farm.ID, "name", farm.Name)

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgFarmCreatedSuccess, Data: farm})
	}
}

// HandleGetFarm returns one farm
func HandleGetFarm(repo repository.Farms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID, ok := GetURLParam(r, w, "farmID")
		if !ok {
			return
		}

		farm, err := repo.GetFarmByID(r.Context(), farmID)
		if err != nil {
			respondServiceError(w, r, "Get farm", err)
			return
		}
		if farm == nil {
			respondError(w, http.StatusNotFound, ErrMsgFarmNotFoundError)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: farm})
	}
}
