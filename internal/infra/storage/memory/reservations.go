package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	reservationRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/reservation"
)

// LockFacility в памяти транзакции уже выполняются по одной, достаточно проверить наличие транзакции
func (s *Store) LockFacility(ctx context.Context, facilityID int64) error {
	if !inTx(ctx) {
		return fmt.Errorf("%w: LockFacility - facility %d: advisory lock requires a transaction",
			reservationRepo.ErrTransaction, facilityID)
	}
	return nil
}

// Create создает бронирование, отклоняя пересечение с активным бронированием объекта
func (s *Store) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	err := s.write(ctx, func(d *data) error {
		if reservation.IsActive() {
			for _, existing := range d.reservations {
				if existing.FacilityID == reservation.FacilityID && existing.IsActive() &&
					existing.Overlaps(reservation.StartTime, reservation.EndTime) {
					return fmt.Errorf("%w: Create - overlaps reservation %d", reservationRepo.ErrOverlap, existing.ID)
				}
			}
		}

		now := s.now()
		d.nextID++
		reservation.ID = d.nextID
		reservation.CreatedAt = now
		reservation.UpdatedAt = now
		d.reservations[reservation.ID] = *reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetByID получает бронирование по ID
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var (
		result domain.Reservation
		found  bool
	)
	s.read(ctx, func(d *data) {
		result, found = d.reservations[id]
	})
	if !found {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &result, nil
}

// GetByUserID получает бронирования пользователя, новые первыми
func (s *Store) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	s.read(ctx, func(d *data) {
		for _, r := range d.reservations {
			r := r
			if r.UserID != userID {
				continue
			}
			if status != nil && r.Status != *status {
				continue
			}
			result = append(result, &r)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

// GetByFacilityWithFilter получает бронирования объекта, пересекающие период [From, To)
func (s *Store) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	s.read(ctx, func(d *data) {
		for _, r := range d.reservations {
			r := r
			if r.FacilityID != filter.FacilityID {
				continue
			}
			if filter.To != nil && !r.StartTime.Before(*filter.To) {
				continue
			}
			if filter.From != nil && !r.EndTime.After(*filter.From) {
				continue
			}
			if filter.Status != nil && r.Status != *filter.Status {
				continue
			}
			if !filter.IncludeInactive && !r.IsActive() {
				continue
			}
			result = append(result, &r)
		}
	})

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// UpdateStatus обновляет статус бронирования
func (s *Store) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if status == domain.StatusCompleted || !status.IsValid() {
		return fmt.Errorf("%w: %s", reservationRepo.ErrInvalidStatus, status)
	}

	return s.write(ctx, func(d *data) error {
		r, ok := d.reservations[id]
		if !ok {
			return reservationRepo.ErrReservationNotFound
		}
		r.Status = status
		r.UpdatedAt = s.now()
		d.reservations[id] = r
		return nil
	})
}

// Cancel отменяет бронирование
func (s *Store) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	return s.write(ctx, func(d *data) error {
		r, ok := d.reservations[id]
		if !ok {
			return reservationRepo.ErrReservationNotFound
		}
		r.Status = domain.StatusCancelled
		r.CancelledAt = &cancelledAt
		r.UpdatedAt = s.now()
		d.reservations[id] = r
		return nil
	})
}
