package schedule

import (
	"errors"
	"fmt"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/intervalset"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

var (
	dayStart = types.MustTimeString("00:00")
	dayEnd   = types.MustTimeString("24:00")
)

// workingHours новые часы работы типа дня
type workingHours struct {
	facilityID int64
	dayType    domain.DayType
	isOpen     bool
	open       types.TimeString
	close      types.TimeString
}

// applyWorkingHours применяет часы работы к текущему расписанию типа дня.
// Существующая сетка переносится на новый диапазон через ChangeParentRange,
// отсутствующая создаётся одним интервалом с начальной ценой.
// У закрытого дня сохраняются прежние часы и сетка.
func applyWorkingHours(current *domain.DaySchedule, wh workingHours, granularity int, initialPrice float64) (*domain.DaySchedule, error) {
	next := &domain.DaySchedule{
		WorkingHours: domain.WorkingHours{
			FacilityID: wh.facilityID,
			DayType:    wh.dayType,
			IsOpen:     wh.isOpen,
			Open:       dayStart,
			Close:      dayEnd,
		},
	}
	if current != nil {
		next.WorkingHours.Open = current.WorkingHours.Open
		next.WorkingHours.Close = current.WorkingHours.Close
		next.Intervals = append([]domain.PricingInterval(nil), current.Intervals...)
	}

	if !wh.isOpen {
		return next, nil
	}

	next.WorkingHours.Open = wh.open
	next.WorkingHours.Close = wh.close

	set, err := currentPricing(current, granularity)
	if err != nil {
		return nil, err
	}

	if set == nil {
		if set, err = intervalset.New(wh.open, wh.close, granularity); err != nil {
			return nil, err
		}
		if err := set.Add(initialPrice); err != nil {
			return nil, err
		}
	} else if err := set.ChangeParentRange(wh.open, wh.close); err != nil {
		return nil, err
	}

	next.SetPricing(set)
	return next, nil
}

// currentPricing возвращает сохранённую сетку или nil, если её нет.
// Сетка, не совпадающая с текущим шагом объекта, пересобирается одним интервалом
// с ценой первого из сохранённых.
func currentPricing(current *domain.DaySchedule, granularity int) (*intervalset.Set, error) {
	if current == nil || len(current.Intervals) == 0 {
		return nil, nil
	}

	set, err := current.PricingSet(granularity)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, intervalset.ErrMisaligned) {
		return nil, fmt.Errorf("stored pricing is inconsistent: %w", err)
	}

	set, err = intervalset.New(current.WorkingHours.Open, current.WorkingHours.Close, granularity)
	if err != nil {
		// Старый диапазон не кратен шагу, сетка создаётся заново
		return nil, nil
	}
	if err := set.Add(current.Intervals[0].PricePerHour); err != nil {
		return nil, err
	}
	return set, nil
}

// mapSetError переводит ошибки набора интервалов в ошибки сервиса
func mapSetError(err error) error {
	switch {
	case errors.Is(err, intervalset.ErrIntervalNotFound):
		return fmt.Errorf("%w: %v", ErrIntervalNotFound, err)
	case errors.Is(err, intervalset.ErrInvariantViolation):
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	case errors.Is(err, intervalset.ErrMisaligned),
		errors.Is(err, intervalset.ErrInvalidRange),
		errors.Is(err, intervalset.ErrInvalidPrice),
		errors.Is(err, intervalset.ErrInvalidTime):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
