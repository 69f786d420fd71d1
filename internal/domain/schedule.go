package domain

import (
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/intervalset"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// DayType тип дня, для которого задаются часы работы и цены
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// DayTypes все типы дней в порядке отображения
var DayTypes = []DayType{DayTypeWeekday, DayTypeWeekend}

// ParseDayType разбирает тип дня
func ParseDayType(s string) (DayType, error) {
	switch DayType(s) {
	case DayTypeWeekday, DayTypeWeekend:
		return DayType(s), nil
	}
	return "", fmt.Errorf("unknown day type %q", s)
}

// DayTypeOf возвращает тип дня для даты (суббота и воскресенье - выходные)
func DayTypeOf(date time.Time) DayType {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return DayTypeWeekend
	default:
		return DayTypeWeekday
	}
}

// WorkingHours часы работы объекта для типа дня
type WorkingHours struct {
	FacilityID int64
	DayType    DayType
	IsOpen     bool
	Open       types.TimeString
	Close      types.TimeString
	UpdatedAt  time.Time
}

// PricingInterval ценовой интервал [Start, End) для типа дня
type PricingInterval struct {
	FacilityID   int64
	DayType      DayType
	Start        types.TimeString
	End          types.TimeString
	PricePerHour float64
}

// DaySchedule часы работы и тарифная сетка одного типа дня
type DaySchedule struct {
	WorkingHours WorkingHours
	Intervals    []PricingInterval
}

// IsBookable returns true if the day is open and has a pricing tiling
func (d *DaySchedule) IsBookable() bool {
	return d != nil && d.WorkingHours.IsOpen && len(d.Intervals) > 0
}

// PricingSet собирает проверенный набор интервалов для расчётов
func (d *DaySchedule) PricingSet(granularity int) (*intervalset.Set, error) {
	intervals := make([]intervalset.Interval, 0, len(d.Intervals))
	for _, p := range d.Intervals {
		intervals = append(intervals, intervalset.Interval{
			Start:        p.Start,
			End:          p.End,
			PricePerHour: p.PricePerHour,
		})
	}
	return intervalset.FromIntervals(d.WorkingHours.Open, d.WorkingHours.Close, granularity, intervals)
}

// SetPricing заменяет ценовые интервалы содержимым набора
func (d *DaySchedule) SetPricing(set *intervalset.Set) {
	intervals := set.Intervals()
	d.Intervals = make([]PricingInterval, 0, len(intervals))
	for _, iv := range intervals {
		d.Intervals = append(d.Intervals, PricingInterval{
			FacilityID:   d.WorkingHours.FacilityID,
			DayType:      d.WorkingHours.DayType,
			Start:        iv.Start,
			End:          iv.End,
			PricePerHour: iv.PricePerHour,
		})
	}
}

// FacilitySchedule расписание объекта по типам дней
type FacilitySchedule struct {
	FacilityID int64
	Days       map[DayType]*DaySchedule
}

// NewFacilitySchedule создает пустое расписание
func NewFacilitySchedule(facilityID int64) *FacilitySchedule {
	return &FacilitySchedule{FacilityID: facilityID, Days: make(map[DayType]*DaySchedule)}
}

// Day возвращает расписание для типа дня
func (s *FacilitySchedule) Day(dayType DayType) (*DaySchedule, bool) {
	if s == nil {
		return nil, false
	}
	day, ok := s.Days[dayType]
	return day, ok
}

// ForDate возвращает расписание, действующее в указанную дату
func (s *FacilitySchedule) ForDate(date time.Time) (*DaySchedule, bool) {
	return s.Day(DayTypeOf(date))
}
