package submit_booking

import (
	"context"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockFacility(ctx context.Context, facilityID int64) error
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetDay(ctx context.Context, facilityID int64, dayType domain.DayType) (*domain.DaySchedule, error)
}

// FacilityServiceClient интерфейс клиента каталога объектов
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики бронирований
type Metrics interface {
	AddReservationsCreated(n int)
	IncBookingConflict()
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
