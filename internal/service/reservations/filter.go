package reservations

import (
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations/models"
)

// statusFilter фильтр по статусу: stored уходит в хранилище,
// effective проверяется после чтения, потому что completed не хранится
type statusFilter struct {
	stored    *domain.ReservationStatus
	effective *domain.ReservationStatus
}

func parseStatusFilter(raw *string) (statusFilter, error) {
	if raw == nil || *raw == "" {
		return statusFilter{}, nil
	}

	status, err := models.ToDomainStatus(*raw)
	if err != nil {
		return statusFilter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored := status
	if status == domain.StatusCompleted {
		stored = domain.StatusConfirmed
	}

	f := statusFilter{stored: &stored}
	if status == domain.StatusConfirmed || status == domain.StatusCompleted {
		f.effective = &status
	}
	return f, nil
}

// wantsInactive returns true if the filter selects cancelled reservations
func (f statusFilter) wantsInactive() bool {
	return f.stored != nil && *f.stored == domain.StatusCancelled
}

func (f statusFilter) apply(list []*domain.Reservation, now time.Time) []*domain.Reservation {
	if f.effective == nil {
		return list
	}

	out := make([]*domain.Reservation, 0, len(list))
	for _, r := range list {
		if r.EffectiveStatus(now) == *f.effective {
			out = append(out, r)
		}
	}
	return out
}
