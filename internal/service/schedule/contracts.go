package schedule

import (
	"context"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error)
	GetDay(ctx context.Context, facilityID int64, dayType domain.DayType) (*domain.DaySchedule, error)
	SaveDay(ctx context.Context, day *domain.DaySchedule) error
}

// ScheduleCache сбрасывает закэшированное расписание объекта
type ScheduleCache interface {
	Invalidate(ctx context.Context, facilityID int64) error
}

// FacilityServiceClient интерфейс клиента каталога объектов
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
