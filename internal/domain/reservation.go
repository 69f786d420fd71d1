package domain

import "time"

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	// StatusCompleted не хранится, вычисляется при чтении (см. EffectiveStatus)
	StatusCompleted ReservationStatus = "completed"
)

// IsValid проверяет, что статус известен
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation бронирование непрерывного отрезка времени на объекте
type Reservation struct {
	ID         int64
	FacilityID int64
	UserID     int64
	StartTime  time.Time
	EndTime    time.Time
	Status     ReservationStatus
	TotalPrice float64

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation blocks its time range
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBePaid returns true if payment can confirm the reservation
func (r *Reservation) CanBePaid() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation is active and has not started yet
func (r *Reservation) CanBeCancelled(now time.Time) bool {
	return r.IsActive() && r.StartTime.After(now)
}

// EffectiveStatus возвращает статус с учётом времени:
// подтверждённое бронирование, начало которого прошло, считается завершённым
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == StatusConfirmed && !r.StartTime.After(now) {
		return StatusCompleted
	}
	return r.Status
}

// Overlaps проверяет пересечение с полуоткрытым отрезком [start, end)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}

// DurationMinutes длительность бронирования в минутах
func (r *Reservation) DurationMinutes() int {
	return int(r.EndTime.Sub(r.StartTime) / time.Minute)
}

// FacilityReservationsFilter фильтр для получения бронирований объекта
type FacilityReservationsFilter struct {
	FacilityID      int64              // Обязательный параметр
	From            *time.Time         // Начало периода (опционально)
	To              *time.Time         // Конец периода, не включая (опционально)
	Status          *ReservationStatus // Фильтр по хранимому статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
