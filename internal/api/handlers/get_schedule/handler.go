package get_schedule

import (
	"errors"
	"net/http"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgFacilityNotFound  = "объект не найден"
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

// Handle GET /api/v1/facilities/{facilityId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/schedule - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), facilityID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/schedule - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFacilityID)

		default:
			h.logger.Error("GET /facilities/{id}/schedule - Failed to get schedule: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/schedule - Schedule retrieved: facility_id=%d", facilityID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
