package get_availability

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from := dateOnly(req.From, time.UTC)
	to := dateOnly(req.To, time.UTC)
	if !to.After(from) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if days := int(to.Sub(from).Hours() / 24); days > maxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxRangeDays)
	}

	return nil
}

// dateOnly переносит календарную дату в полночь указанного часового пояса
func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
