package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	facilityClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	"github.com/Radi03825/PlaySpot-sub000/internal/slots"
)

// UseCase use case для получения сетки доступных слотов по дням
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	facilityClient  FacilityServiceClient
	timeProvider    TimeProvider
	defaultLocation *time.Location
	maxRangeDays    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	facilityClient FacilityServiceClient,
	defaultLocation *time.Location,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		facilityClient:  facilityClient,
		timeProvider:    &RealTimeProvider{},
		defaultLocation: defaultLocation,
		maxRangeDays:    maxRangeDays,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности.
// Закрытые и не настроенные дни возвращаются как закрытые, без ошибки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: facility=%d, from=%s, to=%s",
		req.FacilityID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем объект
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Переводим даты в часовой пояс объекта
	loc := facility.Location(uc.defaultLocation)
	from := dateOnly(req.From, loc)
	to := dateOnly(req.To, loc)
	now := uc.timeProvider.Now().In(loc)

	// 4. Получаем расписание
	schedule, err := uc.scheduleRepo.GetSchedule(ctx, req.FacilityID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedule for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Получаем активные бронирования за весь период одним запросом
	reservations, err := uc.reservationRepo.GetByFacilityWithFilter(ctx, domain.FacilityReservationsFilter{
		FacilityID: req.FacilityID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Строим сетку по дням
	days := make([]domain.DayAvailability, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		day, _ := schedule.ForDate(d)

		availability, err := slots.BuildDay(d, day, facility.Granularity(), reservations, now)
		if err != nil {
			uc.logger.Error("GetAvailability: stored schedule of facility=%d is inconsistent for %s: %v",
				req.FacilityID, d.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to build day %s: %v", ErrInternal, d.Format(domain.DateFormat), err)
		}
		days = append(days, availability)
	}

	uc.logger.Info("GetAvailability: built %d days for facility=%d", len(days), req.FacilityID)

	return &Response{
		FacilityID: req.FacilityID,
		Timezone:   loc.String(),
		Days:       days,
	}, nil
}
