// Package intervalset хранит упорядоченные непересекающиеся интервалы с ценой,
// которые без пропусков покрывают родительский диапазон [open, close).
// Все изменения выполняются над копией и применяются только после Validate,
// поэтому отклонённая операция не меняет набор.
package intervalset

import (
	"fmt"
	"sort"

	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) с ценой за час
type Interval struct {
	Start        types.TimeString `json:"start"`
	End          types.TimeString `json:"end"`
	PricePerHour float64          `json:"pricePerHour"`
}

// DurationMinutes длительность интервала в минутах
func (i Interval) DurationMinutes() int {
	return i.End.Sub(i.Start)
}

// Contains возвращает true, если t лежит в [Start, End)
func (i Interval) Contains(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// Set набор ценовых интервалов одного типа дня
type Set struct {
	open        types.TimeString
	close       types.TimeString
	granularity int
	intervals   []Interval
}

// New создает пустой набор для диапазона [open, close) с шагом granularity минут
func New(open, close types.TimeString, granularity int) (*Set, error) {
	if err := validateRange(open, close, granularity); err != nil {
		return nil, err
	}
	return &Set{open: open, close: close, granularity: granularity}, nil
}

// FromIntervals собирает набор из сохранённых интервалов и проверяет покрытие
func FromIntervals(open, close types.TimeString, granularity int, intervals []Interval) (*Set, error) {
	s, err := New(open, close, granularity)
	if err != nil {
		return nil, err
	}

	s.intervals = make([]Interval, len(intervals))
	copy(s.intervals, intervals)
	sort.Slice(s.intervals, func(i, j int) bool {
		return s.intervals[i].Start.IsBefore(s.intervals[j].Start)
	})

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open начало родительского диапазона
func (s *Set) Open() types.TimeString { return s.open }

// Close конец родительского диапазона
func (s *Set) Close() types.TimeString { return s.close }

// Granularity шаг сетки в минутах
func (s *Set) Granularity() int { return s.granularity }

// Len количество интервалов
func (s *Set) Len() int { return len(s.intervals) }

// Intervals возвращает копию интервалов, отсортированных по началу
func (s *Set) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Clone глубокая копия набора
func (s *Set) Clone() *Set {
	return &Set{
		open:        s.open,
		close:       s.close,
		granularity: s.granularity,
		intervals:   s.Intervals(),
	}
}

// Find возвращает интервал, содержащий момент t
func (s *Set) Find(t types.TimeString) (Interval, bool) {
	for _, iv := range s.intervals {
		if iv.Contains(t) {
			return iv, true
		}
	}
	return Interval{}, false
}

// Validate проверяет, что интервалы точно покрывают [open, close),
// границы кратны шагу сетки и цены неотрицательны
func (s *Set) Validate() error {
	if err := validateRange(s.open, s.close, s.granularity); err != nil {
		return err
	}
	if len(s.intervals) == 0 {
		return fmt.Errorf("%w: no intervals cover %s-%s", ErrInvariantViolation, s.open, s.close)
	}

	if !s.intervals[0].Start.Equal(s.open) {
		return fmt.Errorf("%w: first interval starts at %s, expected %s",
			ErrInvariantViolation, s.intervals[0].Start, s.open)
	}
	last := s.intervals[len(s.intervals)-1]
	if !last.End.Equal(s.close) {
		return fmt.Errorf("%w: last interval ends at %s, expected %s", ErrInvariantViolation, last.End, s.close)
	}

	for i, iv := range s.intervals {
		if iv.Start.Validate() != nil || iv.End.Validate() != nil {
			return fmt.Errorf("%w: %s-%s", ErrInvalidTime, iv.Start, iv.End)
		}
		if !iv.Start.IsBefore(iv.End) {
			return fmt.Errorf("%w: interval %s-%s is empty", ErrInvariantViolation, iv.Start, iv.End)
		}
		if i > 0 && !s.intervals[i-1].End.Equal(iv.Start) {
			return fmt.Errorf("%w: gap or overlap between %s and %s",
				ErrInvariantViolation, s.intervals[i-1].End, iv.Start)
		}
		if !s.aligned(iv.Start) || !s.aligned(iv.End) {
			return fmt.Errorf("%w: %s-%s with step %d min", ErrMisaligned, iv.Start, iv.End, s.granularity)
		}
		if iv.PricePerHour < 0 {
			return fmt.Errorf("%w: %.2f", ErrInvalidPrice, iv.PricePerHour)
		}
	}

	return nil
}

// Add отделяет от последнего интервала новый хвост.
// Граница ставится через один шаг сетки после начала последнего интервала;
// если места нет, набор не меняется. В пустом наборе создаётся [open, close).
func (s *Set) Add(pricePerHour float64) error {
	if pricePerHour < 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidPrice, pricePerHour)
	}

	return s.apply(func(c *Set) error {
		if len(c.intervals) == 0 {
			c.intervals = []Interval{{Start: c.open, End: c.close, PricePerHour: pricePerHour}}
			return nil
		}

		tail := &c.intervals[len(c.intervals)-1]
		boundary, err := tail.Start.AddMinutes(c.granularity)
		if err != nil || !boundary.IsBefore(c.close) {
			return nil
		}

		tail.End = boundary
		c.intervals = append(c.intervals, Interval{Start: boundary, End: c.close, PricePerHour: pricePerHour})
		return nil
	})
}

// Remove удаляет интервал. Его промежуток забирает предыдущий интервал,
// а если удаляется первый - следующий. Последний оставшийся интервал удалить нельзя.
func (s *Set) Remove(start types.TimeString) error {
	return s.apply(func(c *Set) error {
		idx := c.indexOf(start)
		if idx < 0 {
			return fmt.Errorf("%w: start=%s", ErrIntervalNotFound, start)
		}
		if len(c.intervals) == 1 {
			return fmt.Errorf("%w: cannot remove the only interval", ErrInvariantViolation)
		}

		removed := c.intervals[idx]
		if idx > 0 {
			c.intervals[idx-1].End = removed.End
		} else {
			c.intervals[1].Start = removed.Start
		}
		c.intervals = append(c.intervals[:idx], c.intervals[idx+1:]...)
		return nil
	})
}

// UpdateBoundary переносит начало интервала на newStart и цепочкой сдвигает
// конец предыдущего интервала. Конец самого интервала не меняется.
func (s *Set) UpdateBoundary(start, newStart types.TimeString) error {
	if err := newStart.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	return s.apply(func(c *Set) error {
		idx := c.indexOf(start)
		if idx < 0 {
			return fmt.Errorf("%w: start=%s", ErrIntervalNotFound, start)
		}
		if newStart.Equal(start) {
			return nil
		}
		if idx == 0 {
			return fmt.Errorf("%w: first interval must start at %s", ErrInvariantViolation, c.open)
		}

		prev := &c.intervals[idx-1]
		target := &c.intervals[idx]
		if !newStart.IsAfter(prev.Start) || !newStart.IsBefore(target.End) {
			return fmt.Errorf("%w: new start %s must be within (%s, %s)",
				ErrInvariantViolation, newStart, prev.Start, target.End)
		}

		target.Start = newStart
		prev.End = newStart
		return nil
	})
}

// UpdatePrice меняет цену интервала
func (s *Set) UpdatePrice(start types.TimeString, pricePerHour float64) error {
	if pricePerHour < 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidPrice, pricePerHour)
	}

	return s.apply(func(c *Set) error {
		idx := c.indexOf(start)
		if idx < 0 {
			return fmt.Errorf("%w: start=%s", ErrIntervalNotFound, start)
		}
		c.intervals[idx].PricePerHour = pricePerHour
		return nil
	})
}

// ChangeParentRange переносит набор на новый диапазон [open, close).
// Интервалы обрезаются по новым границам, схлопнувшиеся до нуля удаляются,
// крайние интервалы растягиваются до новых границ. Если не осталось ни одного,
// создаётся один интервал с ценой ближайшего старого.
func (s *Set) ChangeParentRange(open, close types.TimeString) error {
	if err := validateRange(open, close, s.granularity); err != nil {
		return err
	}

	return s.apply(func(c *Set) error {
		kept := make([]Interval, 0, len(c.intervals))
		for _, iv := range c.intervals {
			if iv.Start.IsBefore(open) {
				iv.Start = open
			}
			if iv.End.IsAfter(close) {
				iv.End = close
			}
			if iv.Start.IsBefore(iv.End) {
				kept = append(kept, iv)
			}
		}

		if len(kept) == 0 {
			price := 0.0
			if len(c.intervals) > 0 {
				price = c.intervals[len(c.intervals)-1].PricePerHour
				if !close.IsAfter(c.intervals[0].Start) {
					price = c.intervals[0].PricePerHour
				}
			}
			kept = append(kept, Interval{Start: open, End: close, PricePerHour: price})
		}

		kept[0].Start = open
		kept[len(kept)-1].End = close

		c.open = open
		c.close = close
		c.intervals = kept
		return nil
	})
}

func (s *Set) apply(fn func(c *Set) error) error {
	c := s.Clone()
	if err := fn(c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	*s = *c
	return nil
}

func (s *Set) indexOf(start types.TimeString) int {
	for i, iv := range s.intervals {
		if iv.Start.Equal(start) {
			return i
		}
	}
	return -1
}

func (s *Set) aligned(t types.TimeString) bool {
	return t.Sub(s.open)%s.granularity == 0
}

func validateRange(open, close types.TimeString, granularity int) error {
	if open.Validate() != nil || close.Validate() != nil {
		return fmt.Errorf("%w: %s-%s", ErrInvalidRange, open, close)
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: open %s must be before close %s", ErrInvalidRange, open, close)
	}
	if granularity <= 0 {
		return fmt.Errorf("%w: granularity must be positive", ErrInvalidRange)
	}
	if close.Sub(open)%granularity != 0 {
		return fmt.Errorf("%w: %s-%s with step %d min", ErrMisaligned, open, close, granularity)
	}
	return nil
}
