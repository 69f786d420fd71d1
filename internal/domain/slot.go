package domain

import (
	"math"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// AvailableSlot один шаг сетки в конкретную дату
type AvailableSlot struct {
	Date         time.Time
	Start        types.TimeString
	End          types.TimeString
	PricePerHour float64
	Available    bool
}

// Key returns the slot identifier "HH:MM-HH:MM"
func (s *AvailableSlot) Key() string {
	return SlotKey(s.Start, s.End)
}

// DurationMinutes returns the slot length in minutes
func (s *AvailableSlot) DurationMinutes() int {
	return s.End.Sub(s.Start)
}

// StartAt returns the absolute start instant in the date's location
func (s *AvailableSlot) StartAt() time.Time {
	return s.Start.OnDate(s.Date)
}

// EndAt returns the absolute end instant in the date's location
func (s *AvailableSlot) EndAt() time.Time {
	return s.End.OnDate(s.Date)
}

// Price стоимость слота
func (s *AvailableSlot) Price() float64 {
	return s.PricePerHour * float64(s.DurationMinutes()) / 60
}

// DayAvailability сетка слотов на дату
type DayAvailability struct {
	Date   time.Time
	IsOpen bool
	Slots  []AvailableSlot
}

// AvailableCount returns the number of bookable slots
func (d *DayAvailability) AvailableCount() int {
	n := 0
	for i := range d.Slots {
		if d.Slots[i].Available {
			n++
		}
	}
	return n
}

// Run непрерывная последовательность выбранных слотов одной даты
type Run struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
	Slots []AvailableSlot
	Price float64
}

// StartAt returns the absolute start instant of the run
func (r *Run) StartAt() time.Time {
	return r.Start.OnDate(r.Date)
}

// EndAt returns the absolute end instant of the run
func (r *Run) EndAt() time.Time {
	return r.End.OnDate(r.Date)
}

// Key returns the run range "HH:MM-HH:MM"
func (r *Run) Key() string {
	return SlotKey(r.Start, r.End)
}

// SlotKey формирует идентификатор отрезка времени
func SlotKey(start, end types.TimeString) string {
	return start.String() + SlotKeySeparator + end.String()
}

// RoundPrice округляет сумму до копеек
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
