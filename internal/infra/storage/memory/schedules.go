package memory

import (
	"context"
	"fmt"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	scheduleRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/schedule"
)

// GetSchedule получает расписание объекта по всем типам дней
func (s *Store) GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error) {
	schedule := domain.NewFacilitySchedule(facilityID)
	s.read(ctx, func(d *data) {
		for _, dayType := range domain.DayTypes {
			if day, ok := d.days[dayKey{facilityID: facilityID, dayType: dayType}]; ok {
				c := cloneDay(day)
				schedule.Days[dayType] = &c
			}
		}
	})
	return schedule, nil
}

// GetDay получает расписание одного типа дня
func (s *Store) GetDay(ctx context.Context, facilityID int64, dayType domain.DayType) (*domain.DaySchedule, error) {
	var (
		day   domain.DaySchedule
		found bool
	)
	s.read(ctx, func(d *data) {
		day, found = d.days[dayKey{facilityID: facilityID, dayType: dayType}]
		if found {
			day = cloneDay(day)
		}
	})
	if !found {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return &day, nil
}

// SaveDay заменяет расписание типа дня
func (s *Store) SaveDay(ctx context.Context, day *domain.DaySchedule) error {
	if !inTx(ctx) {
		return fmt.Errorf("%w: SaveDay - requires a transaction", scheduleRepo.ErrTransaction)
	}

	return s.write(ctx, func(d *data) error {
		saved := cloneDay(*day)
		saved.WorkingHours.UpdatedAt = s.now()
		d.days[dayKey{facilityID: day.WorkingHours.FacilityID, dayType: day.WorkingHours.DayType}] = saved
		return nil
	})
}
