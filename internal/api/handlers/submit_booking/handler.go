package submit_booking

import (
	"errors"
	"net/http"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	submitBooking "github.com/Radi03825/PlaySpot-sub000/internal/usecase/submit_booking"
)

const (
	msgInvalidFacilityID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSelection   = "некорректный выбор слотов"
	msgFacilityClosed     = "объект не работает в выбранную дату"
	msgSlotInPast         = "нельзя забронировать уже начавшийся слот"
	msgFacilityNotFound   = "объект не найден"
	msgConflict           = "выбранное время уже занято"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities/{facilityId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /facilities/{id}/bookings - User ID missing in context")
		handlers.RespondInternalError(w)
		return
	}

	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facilities/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, facilityID)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *submitBooking.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /facilities/{id}/bookings - Conflict: facility_id=%d, user_id=%d, run=%s",
				facilityID, userID, conflict.Run)
			handlers.RespondConflict(w, msgConflict+": "+conflict.Run)

		case errors.Is(err, submitBooking.ErrConflict):
			h.logger.Warn("POST /facilities/{id}/bookings - Conflict: facility_id=%d, user_id=%d", facilityID, userID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, submitBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/bookings - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, submitBooking.ErrFacilityClosed):
			h.logger.Warn("POST /facilities/{id}/bookings - Facility closed: facility_id=%d, date=%s",
				facilityID, req.Date)
			handlers.RespondBadRequest(w, msgFacilityClosed)

		case errors.Is(err, submitBooking.ErrSlotInPast):
			h.logger.Warn("POST /facilities/{id}/bookings - Slot in past: facility_id=%d, date=%s", facilityID, req.Date)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /facilities/{id}/bookings - Invalid selection: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		default:
			h.logger.Error("POST /facilities/{id}/bookings - Failed to submit booking: facility_id=%d, user_id=%d, error=%v",
				facilityID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/bookings - Booking submitted: facility_id=%d, user_id=%d, reservations=%d, total=%.2f",
		facilityID, userID, len(result.Reservations), result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
