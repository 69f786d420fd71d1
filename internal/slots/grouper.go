package slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// Group объединяет выбранные слоты в непрерывные отрезки.
// Слоты сортируются по началу, соседние (конец предыдущего равен началу следующего)
// попадают в один отрезок. Цена отрезка - сумма цен его слотов.
func Group(selected []domain.AvailableSlot) ([]domain.Run, error) {
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	sorted := make([]domain.AvailableSlot, len(selected))
	copy(sorted, selected)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})

	if err := validateSelection(sorted); err != nil {
		return nil, err
	}

	runs := make([]domain.Run, 0, 1)
	for _, slot := range sorted {
		if n := len(runs); n > 0 && runs[n-1].End.Equal(slot.Start) {
			last := &runs[n-1]
			last.End = slot.End
			last.Slots = append(last.Slots, slot)
			continue
		}
		runs = append(runs, domain.Run{
			Date:  slot.Date,
			Start: slot.Start,
			End:   slot.End,
			Slots: []domain.AvailableSlot{slot},
		})
	}

	for i := range runs {
		runs[i].Price = runPrice(runs[i].Slots)
	}

	return runs, nil
}

func validateSelection(sorted []domain.AvailableSlot) error {
	first := sorted[0].Date
	for i, slot := range sorted {
		if slot.Start.Validate() != nil || slot.End.Validate() != nil || !slot.Start.IsBefore(slot.End) {
			return fmt.Errorf("%w: %s", ErrInvalidSlot, slot.Key())
		}
		if !slot.Available {
			return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot.Key())
		}
		if !sameDate(first, slot.Date) {
			return fmt.Errorf("%w: %s and %s",
				ErrMixedDates, first.Format(domain.DateFormat), slot.Date.Format(domain.DateFormat))
		}
		if i > 0 && slot.Start.IsBefore(sorted[i-1].End) {
			return fmt.Errorf("%w: %s overlaps %s", ErrDuplicateSlot, slot.Key(), sorted[i-1].Key())
		}
	}
	return nil
}

func runPrice(slots []domain.AvailableSlot) float64 {
	var total float64
	for i := range slots {
		total += slots[i].Price()
	}
	return domain.RoundPrice(total)
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
