package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	scheduleRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/schedule"
	facilityClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	"github.com/Radi03825/PlaySpot-sub000/internal/intervalset"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// Service сервис управления часами работы и тарифной сеткой объекта
type Service struct {
	scheduleRepo   ScheduleRepository
	cache          ScheduleCache
	facilityClient FacilityServiceClient
	txManager      TransactionManager
	initialPrice   float64
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписаний.
// cache может быть nil.
func NewService(
	scheduleRepo ScheduleRepository,
	cache ScheduleCache,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	initialPrice float64,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		cache:          cache,
		facilityClient: facilityClient,
		txManager:      txManager,
		initialPrice:   initialPrice,
		logger:         logger,
	}
}

// GetSchedule возвращает часы работы и тарифную сетку по всем типам дней
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, facilityID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for facility=%d", facilityID)

	if facilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if _, err := s.getFacility(ctx, "GetSchedule", facilityID); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetSchedule(ctx, facilityID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// SetWorkingHours изменяет часы работы типа дня
// Доступно только владельцу объекта
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("SetWorkingHours: facility=%d, dayType=%s, open=%t %s-%s by user=%d",
		req.FacilityID, req.DayType, req.IsOpen, req.Open, req.Close, req.UserID)

	// 1. Валидируем входные данные
	wh, err := parseWorkingHours(req)
	if err != nil {
		s.logger.Warn("SetWorkingHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем объект и права доступа
	facility, err := s.authorize(ctx, "SetWorkingHours", req.FacilityID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменение в транзакции
	var saved *domain.DaySchedule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.scheduleRepo.GetDay(txCtx, req.FacilityID, wh.dayType)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return fmt.Errorf("%w: SetWorkingHours - get day: %v", ErrInternal, err)
		}

		next, err := applyWorkingHours(current, wh, facility.Granularity(), s.initialPrice)
		if err != nil {
			return mapSetError(err)
		}

		if err := s.scheduleRepo.SaveDay(txCtx, next); err != nil {
			return fmt.Errorf("%w: SetWorkingHours - save day: %v", ErrInternal, err)
		}
		saved = next
		return nil
	})
	if err != nil {
		s.logEditError("SetWorkingHours", err)
		return nil, err
	}

	// 4. Сбрасываем кэш
	s.invalidate(ctx, "SetWorkingHours", req.FacilityID)

	s.logger.Info("SetWorkingHours: facility=%d, dayType=%s now has %d pricing intervals",
		req.FacilityID, wh.dayType, len(saved.Intervals))
	resp := models.FromDomainDay(wh.dayType, saved)
	return &resp, nil
}

// UpsertPricingInterval добавляет ценовой интервал в конец дня (Start не задан)
// или меняет границу и/или цену существующего
// Доступно только владельцу объекта
func (s *Service) UpsertPricingInterval(ctx context.Context, req *models.UpsertPricingIntervalRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("UpsertPricingInterval: facility=%d, dayType=%s by user=%d", req.FacilityID, req.DayType, req.UserID)

	// 1. Валидируем входные данные
	edit, err := parsePricingEdit(req)
	if err != nil {
		s.logger.Warn("UpsertPricingInterval: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем объект и права доступа
	facility, err := s.authorize(ctx, "UpsertPricingInterval", req.FacilityID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменение
	saved, err := s.editPricing(ctx, "UpsertPricingInterval", req.FacilityID, edit.dayType, facility.Granularity(),
		func(set *intervalset.Set) error {
			if edit.start == nil {
				before := set.Len()
				if err := set.Add(*edit.price); err != nil {
					return err
				}
				if set.Len() == before {
					s.logger.Warn("UpsertPricingInterval: no room for a new interval in facility=%d, dayType=%s",
						req.FacilityID, edit.dayType)
				}
				return nil
			}

			start := *edit.start
			if edit.newStart != nil {
				if err := set.UpdateBoundary(start, *edit.newStart); err != nil {
					return err
				}
				start = *edit.newStart
			}
			if edit.price != nil {
				return set.UpdatePrice(start, *edit.price)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainDay(edit.dayType, saved)
	return &resp, nil
}

// RemovePricingInterval удаляет ценовой интервал, его время забирает соседний
// Доступно только владельцу объекта
func (s *Service) RemovePricingInterval(ctx context.Context, req *models.RemovePricingIntervalRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("RemovePricingInterval: facility=%d, dayType=%s, start=%s by user=%d",
		req.FacilityID, req.DayType, req.Start, req.UserID)

	// 1. Валидируем входные данные
	dayType, err := domain.ParseDayType(string(req.DayType))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := types.NewTimeStringFromString(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем объект и права доступа
	facility, err := s.authorize(ctx, "RemovePricingInterval", req.FacilityID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменение
	saved, err := s.editPricing(ctx, "RemovePricingInterval", req.FacilityID, dayType, facility.Granularity(),
		func(set *intervalset.Set) error {
			return set.Remove(start)
		})
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainDay(dayType, saved)
	return &resp, nil
}

// editPricing загружает сетку типа дня, применяет fn и сохраняет результат в одной транзакции
func (s *Service) editPricing(
	ctx context.Context,
	op string,
	facilityID int64,
	dayType domain.DayType,
	granularity int,
	fn func(set *intervalset.Set) error,
) (*domain.DaySchedule, error) {
	var saved *domain.DaySchedule

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		day, err := s.scheduleRepo.GetDay(txCtx, facilityID, dayType)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return fmt.Errorf("%w: working hours for %s are not set", ErrScheduleNotFound, dayType)
			}
			return fmt.Errorf("%w: %s - get day: %v", ErrInternal, op, err)
		}
		if len(day.Intervals) == 0 {
			return fmt.Errorf("%w: no pricing for %s", ErrScheduleNotFound, dayType)
		}

		set, err := day.PricingSet(granularity)
		if err != nil {
			return fmt.Errorf("%w: %s - stored pricing is inconsistent: %v", ErrInternal, op, err)
		}

		if err := fn(set); err != nil {
			return mapSetError(err)
		}

		day.SetPricing(set)
		if err := s.scheduleRepo.SaveDay(txCtx, day); err != nil {
			return fmt.Errorf("%w: %s - save day: %v", ErrInternal, op, err)
		}
		saved = day
		return nil
	})
	if err != nil {
		s.logEditError(op, err)
		return nil, err
	}

	s.invalidate(ctx, op, facilityID)

	s.logger.Info("%s: facility=%d, dayType=%s now has %d pricing intervals", op, facilityID, dayType, len(saved.Intervals))
	return saved, nil
}

// authorize получает объект и проверяет, что пользователь им управляет
func (s *Service) authorize(ctx context.Context, op string, facilityID, userID int64) (*domain.Facility, error) {
	facility, err := s.getFacility(ctx, op, facilityID)
	if err != nil {
		return nil, err
	}

	if !facility.IsOwner(userID) {
		s.logger.Warn("%s: user=%d is not an owner of facility=%d", op, userID, facilityID)
		return nil, ErrAccessDenied
	}

	return facility, nil
}

func (s *Service) getFacility(ctx context.Context, op string, facilityID int64) (*domain.Facility, error) {
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("%s: facility id=%d not found", op, facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("%s: failed to get facility id=%d: %v", op, facilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	return facility, nil
}

func (s *Service) invalidate(ctx context.Context, op string, facilityID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, facilityID); err != nil {
		s.logger.Warn("%s: failed to invalidate schedule cache for facility=%d: %v", op, facilityID, err)
	}
}

func (s *Service) logEditError(op string, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: %v", op, err)
		return
	}
	s.logger.Warn("%s: rejected: %v", op, err)
}
