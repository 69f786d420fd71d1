package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	reservationRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/reservation"
	scheduleRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/schedule"
	facilityClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	"github.com/Radi03825/PlaySpot-sub000/internal/slots"
)

// UseCase use case для бронирования выбранных слотов
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	facilityClient  FacilityServiceClient
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	defaultLocation *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	defaultLocation *time.Location,
	logger Logger,
) *UseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		facilityClient:  facilityClient,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования.
// Выбранные слоты группируются в непрерывные отрезки, на каждый создаётся
// бронирование в статусе pending. Либо создаются все, либо ни одного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%d, facility=%d, date=%s, slots=%d",
		req.UserID, req.FacilityID, req.Date.Format(domain.DateFormat), len(req.Slots))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем объект
	facility, err := uc.facilityClient.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			uc.logger.Warn("SubmitBooking: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	loc := facility.Location(uc.defaultLocation)
	date := localDate(req.Date, loc)
	now := uc.timeProvider.Now().In(loc)

	var created []*domain.Reservation

	// 3. Выполняем проверку и создание в транзакции под блокировкой объекта
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		// 3.1. Блокируем объект
		if err := uc.reservationRepo.LockFacility(txCtx, req.FacilityID); err != nil {
			return fmt.Errorf("%w: failed to lock facility: %w", ErrInternal, err)
		}

		// 3.2. Расписание на тип дня
		day, err := uc.scheduleRepo.GetDay(txCtx, req.FacilityID, domain.DayTypeOf(date))
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrFacilityClosed
			}
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}
		if !day.IsBookable() {
			return ErrFacilityClosed
		}

		// 3.3. Тарифная сетка без учёта занятости
		grid, err := slots.PricingGrid(date, day, facility.Granularity())
		if err != nil {
			return fmt.Errorf("%w: failed to build pricing grid: %v", ErrInternal, err)
		}

		// 3.4. Сопоставляем ключи со слотами сетки
		selected, err := slots.Resolve(grid, req.Slots)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3.5. Начавшиеся слоты бронировать нельзя
		if s, ok := firstStarted(selected, now); ok {
			return fmt.Errorf("%w: %s", ErrSlotInPast, s.Key())
		}

		// 3.6. Группируем в непрерывные отрезки
		runs, err := slots.Group(selected)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3.7. Проверяем пересечения с активными бронированиями на эту дату
		dayStart, dayEnd := date, date.AddDate(0, 0, 1)
		existing, err := uc.reservationRepo.GetByFacilityWithFilter(txCtx, domain.FacilityReservationsFilter{
			FacilityID: req.FacilityID,
			From:       &dayStart,
			To:         &dayEnd,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		for _, run := range runs {
			if r, ok := slots.FindOverlapping(run, existing); ok {
				uc.logger.Warn("SubmitBooking: run %s overlaps reservation id=%d", run.Key(), r.ID)
				return &ConflictError{Run: run.Key()}
			}
		}

		// 3.8. Создаём бронирования
		for _, run := range runs {
			reservation, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
				FacilityID: req.FacilityID,
				UserID:     req.UserID,
				StartTime:  run.StartAt(),
				EndTime:    run.EndAt(),
				Status:     domain.StatusPending,
				TotalPrice: run.Price,
			})
			if err != nil {
				if errors.Is(err, reservationRepo.ErrOverlap) {
					return &ConflictError{Run: run.Key()}
				}
				return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
			}
			created = append(created, reservation)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrConflict) && uc.metrics != nil {
			uc.metrics.IncBookingConflict()
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("SubmitBooking: transaction failed: %v", err)
		} else {
			uc.logger.Warn("SubmitBooking: rejected: %v", err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AddReservationsCreated(len(created))
	}

	// 4. Формируем ответ
	resp := &Response{Reservations: created}
	for _, r := range created {
		resp.TotalPrice += r.TotalPrice
	}
	resp.TotalPrice = domain.RoundPrice(resp.TotalPrice)

	uc.logger.Info("SubmitBooking: created %d reservations for user=%d, facility=%d, total=%.2f",
		len(created), req.UserID, req.FacilityID, resp.TotalPrice)

	return resp, nil
}
