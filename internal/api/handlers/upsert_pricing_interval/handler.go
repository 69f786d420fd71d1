package upsert_pricing_interval

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule"
)

const (
	msgInvalidFacilityID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный ценовой интервал"
	msgInvariantViolation = "изменение нарушает тарифную сетку"
	msgScheduleNotFound   = "часы работы для этого типа дня не настроены"
	msgIntervalNotFound   = "ценовой интервал не найден"
	msgFacilityNotFound   = "объект не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/facilities/{facilityId}/schedule/{dayType}/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("PUT /facilities/{id}/schedule/{dayType}/pricing - User ID missing in context")
		handlers.RespondInternalError(w)
		return
	}

	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}
	dayType := mux.Vars(r)["dayType"]

	var req UpsertPricingIntervalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertPricingInterval(r.Context(), req.ToServiceRequest(userID, facilityID, dayType))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrInvariantViolation):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Invariant violation: %v", err)
			handlers.RespondUnprocessable(w, msgInvariantViolation)

		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Schedule not found: facility_id=%d, day_type=%s",
				facilityID, dayType)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedule.ErrIntervalNotFound):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Interval not found: facility_id=%d, day_type=%s",
				facilityID, dayType)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, schedule.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/pricing - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /facilities/{id}/schedule/{dayType}/pricing - Failed to update pricing: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id}/schedule/{dayType}/pricing - Pricing updated: facility_id=%d, day_type=%s, intervals=%d",
		facilityID, dayType, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, result)
}
