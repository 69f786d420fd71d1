package set_working_hours

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
	msgInvalidInput       = "некорректные часы работы"
	msgInvariantViolation = "изменение нарушает тарифную сетку"
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

// Handle PUT /api/v1/facilities/{facilityId}/schedule/{dayType}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("PUT /facilities/{id}/schedule/{dayType}/working-hours - User ID missing in context")
		handlers.RespondInternalError(w)
		return
	}

	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/working-hours - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}
	dayType := mux.Vars(r)["dayType"]

	var req SetWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWorkingHours(r.Context(), req.ToServiceRequest(userID, facilityID, dayType))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/working-hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrInvariantViolation):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/working-hours - Invariant violation: %v", err)
			handlers.RespondUnprocessable(w, msgInvariantViolation)

		case errors.Is(err, schedule.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/working-hours - Facility not found: facility_id=%d",
				facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /facilities/{id}/schedule/{dayType}/working-hours - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /facilities/{id}/schedule/{dayType}/working-hours - Failed to set working hours: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id}/schedule/{dayType}/working-hours - Working hours updated: facility_id=%d, day_type=%s, user_id=%d",
		facilityID, dayType, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
