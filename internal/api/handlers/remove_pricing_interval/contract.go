package remove_pricing_interval

import (
	"context"

	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	RemovePricingInterval(ctx context.Context, req *models.RemovePricingIntervalRequest) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
