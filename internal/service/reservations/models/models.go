package models

import (
	"errors"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID      int64   `json:"userId"`
	RequesterID int64   `json:"-"`
	Status      *string `json:"status,omitempty"`
}

// GetFacilityReservationsRequest запрос на получение бронирований объекта
type GetFacilityReservationsRequest struct {
	UserID          int64      `json:"userId"`
	FacilityID      int64      `json:"facilityId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода, не включая (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64      `json:"id"`
	FacilityID      int64      `json:"facilityId"`
	UserID          int64      `json:"userId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	TotalPrice      float64    `json:"totalPrice"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// Статус отдаётся с учётом времени: прошедшее подтверждённое бронирование - completed.
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              r.ID,
		FacilityID:      r.FacilityID,
		UserID:          r.UserID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes(),
		Status:          string(r.EffectiveStatus(now)),
		TotalPrice:      r.TotalPrice,
		CancelledAt:     r.CancelledAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation, now time.Time) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		if item := FromDomainReservation(r, now); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}
	return resp
}

// ToDomainStatus конвертирует строку в статус с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
