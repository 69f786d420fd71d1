package pay_reservation

import (
	"context"

	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	Pay(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
