package get_availability

import (
	"context"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error)
}

// FacilityServiceClient интерфейс клиента каталога объектов
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
