package submit_booking

import (
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// Request модель запроса бронирования выбранных слотов
type Request struct {
	UserID     int64
	FacilityID int64
	Date       time.Time
	Slots      []string // Ключи слотов "HH:MM-HH:MM"
}

// Response модель ответа: по одному бронированию на каждый непрерывный отрезок
type Response struct {
	Reservations []*domain.Reservation
	TotalPrice   float64
}
