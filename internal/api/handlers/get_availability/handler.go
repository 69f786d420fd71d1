package get_availability

import (
	"errors"
	"net/http"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	getAvailability "github.com/Radi03825/PlaySpot-sub000/internal/usecase/get_availability"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgMissingFrom       = "параметр from обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный период"
	msgRangeTooLarge     = "слишком большой период"
	msgFacilityNotFound  = "объект не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability
// Query params: from (required, YYYY-MM-DD), to (optional, не включая, по умолчанию from + 1 день)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	query := r.URL.Query()
	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /facilities/{id}/availability - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := handlers.ParseDate(fromStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to := from.AddDate(0, 0, 1)
	if toStr := query.Get("to"); toStr != "" {
		if to, err = handlers.ParseDate(toStr); err != nil {
			h.logger.Warn("GET /facilities/{id}/availability - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		FacilityID: facilityID,
		From:       from,
		To:         to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRangeTooLarge):
			h.logger.Warn("GET /facilities/{id}/availability - Range too large: facility_id=%d", facilityID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/availability - Invalid range: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/availability - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/{id}/availability - Failed to get availability: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/availability - Availability retrieved: facility_id=%d, days=%d",
		facilityID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
