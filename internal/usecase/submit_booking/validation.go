package submit_booking

import (
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/slots"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, slots.ErrEmptySelection)
	}

	if len(req.Slots) > domain.MaxSlotsPerSubmission {
		return fmt.Errorf("%w: at most %d slots per request", ErrInvalidInput, domain.MaxSlotsPerSubmission)
	}

	for _, key := range req.Slots {
		if _, _, err := slots.ParseKey(key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// localDate переносит календарную дату запроса в часовой пояс объекта
func localDate(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// firstStarted возвращает первый слот, который уже начался к моменту now
func firstStarted(selected []domain.AvailableSlot, now time.Time) (domain.AvailableSlot, bool) {
	for _, s := range selected {
		if !s.StartAt().After(now) {
			return s, true
		}
	}
	return domain.AvailableSlot{}, false
}
