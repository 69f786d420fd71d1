// Package slots строит сетку слотов на дату и группирует выбранные слоты
// в непрерывные отрезки с итоговой ценой.
package slots

import (
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// PricingGrid делит [open, close) на шаги сетки и назначает каждому шагу цену
// содержащего его ценового интервала. Все слоты помечены доступными.
// Закрытый или не настроенный день даёт пустую сетку.
func PricingGrid(date time.Time, day *domain.DaySchedule, granularity int) ([]domain.AvailableSlot, error) {
	if !day.IsBookable() {
		return []domain.AvailableSlot{}, nil
	}

	set, err := day.PricingSet(granularity)
	if err != nil {
		return nil, fmt.Errorf("pricing for %s: %w", day.WorkingHours.DayType, err)
	}

	date = dateOnly(date)
	result := make([]domain.AvailableSlot, 0, set.Close().Sub(set.Open())/granularity)

	for start := set.Open(); start.IsBefore(set.Close()); {
		end, err := start.AddMinutes(granularity)
		if err != nil {
			return nil, err
		}

		// Границы интервалов кратны шагу сетки, поэтому шаг целиком лежит в одном интервале
		interval, ok := set.Find(start)
		if !ok {
			return nil, fmt.Errorf("no pricing interval contains %s", start)
		}

		result = append(result, domain.AvailableSlot{
			Date:         date,
			Start:        start,
			End:          end,
			PricePerHour: interval.PricePerHour,
			Available:    true,
		})
		start = end
	}

	return result, nil
}

// BuildDay строит доступность на дату: слот недоступен, если он пересекается
// с активным бронированием или уже начался к моменту now
func BuildDay(
	date time.Time,
	day *domain.DaySchedule,
	granularity int,
	reservations []*domain.Reservation,
	now time.Time,
) (domain.DayAvailability, error) {
	date = dateOnly(date)

	if !day.IsBookable() {
		return domain.DayAvailability{Date: date, IsOpen: false, Slots: []domain.AvailableSlot{}}, nil
	}

	grid, err := PricingGrid(date, day, granularity)
	if err != nil {
		return domain.DayAvailability{}, err
	}

	for i := range grid {
		slot := &grid[i]
		if !now.IsZero() && !slot.StartAt().After(now) {
			slot.Available = false
			continue
		}
		if overlapsAny(slot.StartAt(), slot.EndAt(), reservations) {
			slot.Available = false
		}
	}

	return domain.DayAvailability{Date: date, IsOpen: true, Slots: grid}, nil
}

// overlapsAny проверяет пересечение [start, end) с активными бронированиями.
// Бронирования, граничащие со слотом, пересечением не считаются.
func overlapsAny(start, end time.Time, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r.IsActive() && r.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// FindOverlapping возвращает первое активное бронирование, пересекающее отрезок
func FindOverlapping(run domain.Run, reservations []*domain.Reservation) (*domain.Reservation, bool) {
	start, end := run.StartAt(), run.EndAt()
	for _, r := range reservations {
		if r.IsActive() && r.Overlaps(start, end) {
			return r, true
		}
	}
	return nil, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
