package schedule

import (
	"context"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// Store источник расписаний (postgres или memory)
type Store interface {
	GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error)
	GetDay(ctx context.Context, facilityID int64, dayType domain.DayType) (*domain.DaySchedule, error)
	SaveDay(ctx context.Context, day *domain.DaySchedule) error
}

// Metrics счётчики попаданий в кэш
type Metrics interface {
	IncCacheHit(cache string)
	IncCacheMiss(cache string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
