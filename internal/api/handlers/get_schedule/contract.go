package get_schedule

import (
	"context"

	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, facilityID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
