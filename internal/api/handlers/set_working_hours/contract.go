package set_working_hours

import (
	"context"

	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
