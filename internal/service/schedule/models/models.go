package models

import (
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// Request модели

// SetWorkingHoursRequest запрос на изменение часов работы типа дня
type SetWorkingHoursRequest struct {
	UserID     int64          `json:"userId"`
	FacilityID int64          `json:"facilityId"`
	DayType    domain.DayType `json:"dayType"`
	IsOpen     bool           `json:"isOpen"`
	Open       string         `json:"open,omitempty"`  // HH:MM, обязательно для рабочего дня
	Close      string         `json:"close,omitempty"` // HH:MM, допускается 24:00
}

// UpsertPricingIntervalRequest запрос на добавление или изменение ценового интервала.
// Без Start добавляется новый интервал в конец дня, иначе меняется граница и/или цена.
type UpsertPricingIntervalRequest struct {
	UserID       int64          `json:"userId"`
	FacilityID   int64          `json:"facilityId"`
	DayType      domain.DayType `json:"dayType"`
	Start        *string        `json:"start,omitempty"`
	NewStart     *string        `json:"newStart,omitempty"`
	PricePerHour *float64       `json:"pricePerHour,omitempty"`
}

// RemovePricingIntervalRequest запрос на удаление ценового интервала
type RemovePricingIntervalRequest struct {
	UserID     int64          `json:"userId"`
	FacilityID int64          `json:"facilityId"`
	DayType    domain.DayType `json:"dayType"`
	Start      string         `json:"start"`
}

// Response модели

// IntervalResponse ценовой интервал
type IntervalResponse struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	PricePerHour float64 `json:"pricePerHour"`
}

// DayScheduleResponse часы работы и тарифная сетка типа дня
type DayScheduleResponse struct {
	DayType   domain.DayType     `json:"dayType"`
	IsOpen    bool               `json:"isOpen"`
	Open      string             `json:"open,omitempty"`
	Close     string             `json:"close,omitempty"`
	Intervals []IntervalResponse `json:"intervals"`
}

// ScheduleResponse расписание объекта
type ScheduleResponse struct {
	FacilityID int64                 `json:"facilityId"`
	Days       []DayScheduleResponse `json:"days"`
}

// Методы конвертации

// FromDomainDay конвертирует расписание типа дня в DTO
func FromDomainDay(dayType domain.DayType, day *domain.DaySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{DayType: dayType, Intervals: []IntervalResponse{}}
	if day == nil {
		return resp
	}

	resp.IsOpen = day.WorkingHours.IsOpen
	if day.WorkingHours.IsOpen {
		resp.Open = day.WorkingHours.Open.String()
		resp.Close = day.WorkingHours.Close.String()
	}
	for _, iv := range day.Intervals {
		resp.Intervals = append(resp.Intervals, IntervalResponse{
			Start:        iv.Start.String(),
			End:          iv.End.String(),
			PricePerHour: iv.PricePerHour,
		})
	}
	return resp
}

// FromDomainSchedule конвертирует расписание объекта в DTO.
// Не настроенные типы дней отдаются как закрытые.
func FromDomainSchedule(s *domain.FacilitySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{FacilityID: s.FacilityID, Days: make([]DayScheduleResponse, 0, len(domain.DayTypes))}
	for _, dayType := range domain.DayTypes {
		day, _ := s.Day(dayType)
		resp.Days = append(resp.Days, FromDomainDay(dayType, day))
	}
	return resp
}
