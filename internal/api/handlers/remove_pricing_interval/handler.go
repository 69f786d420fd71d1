package remove_pricing_interval

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgInvalidInput      = "некорректный ценовой интервал"
	msgLastInterval      = "нельзя удалить единственный ценовой интервал"
	msgScheduleNotFound  = "часы работы для этого типа дня не настроены"
	msgIntervalNotFound  = "ценовой интервал не найден"
	msgFacilityNotFound  = "объект не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/facilities/{facilityId}/schedule/{dayType}/pricing/{start}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - User ID missing in context")
		handlers.RespondInternalError(w)
		return
	}

	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	vars := mux.Vars(r)
	req := &models.RemovePricingIntervalRequest{
		UserID:     userID,
		FacilityID: facilityID,
		DayType:    domain.DayType(vars["dayType"]),
		Start:      vars["start"],
	}

	result, err := h.service.RemovePricingInterval(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrInvariantViolation):
			h.logger.Warn("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Last interval: facility_id=%d, day_type=%s",
				facilityID, req.DayType)
			handlers.RespondUnprocessable(w, msgLastInterval)

		case errors.Is(err, schedule.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedule.ErrIntervalNotFound):
			h.logger.Warn("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Interval not found: facility_id=%d, start=%s",
				facilityID, req.Start)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, schedule.ErrFacilityNotFound):
			h.logger.Warn("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Facility not found: facility_id=%d",
				facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Failed to remove interval: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facilities/{id}/schedule/{dayType}/pricing/{start} - Interval removed: facility_id=%d, day_type=%s, start=%s",
		facilityID, req.DayType, req.Start)
	handlers.RespondJSON(w, http.StatusOK, result)
}
