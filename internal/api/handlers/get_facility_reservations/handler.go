package get_facility_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations/models"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFlag       = "некорректное значение includeInactive"
	msgInvalidFilter     = "некорректные параметры фильтра"
	msgFacilityNotFound  = "объект не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/reservations
// Query params: from, to (YYYY-MM-DD, optional), status (optional), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /facilities/{id}/reservations - User ID missing in context")
		handlers.RespondInternalError(w)
		return
	}

	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	query := r.URL.Query()
	req := &models.GetFacilityReservationsRequest{
		UserID:     userID,
		FacilityID: facilityID,
	}

	if req.From, err = parseOptionalDate(query.Get("from")); err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if req.To, err = parseOptionalDate(query.Get("to")); err != nil {
		h.logger.Warn("GET /facilities/{id}/reservations - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		if req.IncludeInactive, err = strconv.ParseBool(raw); err != nil {
			h.logger.Warn("GET /facilities/{id}/reservations - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
	}

	result, err := h.service.GetFacilityReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, reservations.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/reservations - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/reservations - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /facilities/{id}/reservations - Failed to get reservations: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/reservations - Reservations retrieved: facility_id=%d, count=%d",
		facilityID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := handlers.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
