package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	reservationRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/reservation"
	facilityClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	facilityClient  FacilityServiceClient
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		facilityClient:  facilityClient,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Доступно автору бронирования и владельцу объекта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != userID {
		if err := s.checkOwnerAccess(ctx, reservation.FacilityID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу, completed вычисляется по времени
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserReservations: user=%d requested reservations of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetUserReservations: invalid status=%v for user=%d", req.Status, req.UserID)
		return nil, err
	}

	list, err := s.reservationRepo.GetByUserID(ctx, req.UserID, filter.stored)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	list = filter.apply(list, now)

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(list), req.UserID)
	return models.FromDomainReservationList(list, now), nil
}

// GetFacilityReservations получает бронирования объекта с фильтрацией по периоду и статусу
// Доступно только владельцу объекта
func (s *Service) GetFacilityReservations(ctx context.Context, req *models.GetFacilityReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetFacilityReservations: fetching reservations for facility=%d, user=%d", req.FacilityID, req.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	filter, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetFacilityReservations: invalid status for facility=%d: %v", req.FacilityID, err)
		return nil, err
	}

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.FacilityID, req.UserID); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.GetByFacilityWithFilter(ctx, domain.FacilityReservationsFilter{
		FacilityID:      req.FacilityID,
		From:            req.From,
		To:              req.To,
		Status:          filter.stored,
		IncludeInactive: req.IncludeInactive || filter.wantsInactive(),
	})
	if err != nil {
		s.logger.Error("GetFacilityReservations: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityReservations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	list = filter.apply(list, now)

	s.logger.Info("GetFacilityReservations: successfully fetched %d reservations for facility=%d", len(list), req.FacilityID)
	return models.FromDomainReservationList(list, now), nil
}

// Pay подтверждает оплату бронирования: pending -> confirmed
// Оплату фиксирует автор бронирования
func (s *Service) Pay(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Pay: paying reservation id=%d by user=%d", id, userID)

	var paid *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, "Pay", id)
		if err != nil {
			return err
		}

		if reservation.UserID != userID {
			s.logger.Warn("Pay: access denied for user=%d to reservation id=%d", userID, id)
			return ErrAccessDenied
		}

		if !reservation.CanBePaid() {
			s.logger.Warn("Pay: reservation id=%d cannot be paid, status=%s", id, reservation.Status)
			return ErrCannotPay
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			return s.mapRepoError("Pay", id, err)
		}

		reservation.Status = domain.StatusConfirmed
		paid = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncReservationPaid()
	}

	s.logger.Info("Pay: successfully confirmed reservation id=%d", id)
	return models.FromDomainReservation(paid, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование
// Отменить можно только своё активное бронирование, которое ещё не началось
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, userID)

	now := s.timeProvider.Now()

	var cancelled *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if reservation.UserID != userID {
			s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", userID, id)
			return ErrAccessDenied
		}

		if !reservation.CanBeCancelled(now) {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s, start=%s",
				id, reservation.Status, reservation.StartTime.Format(time.RFC3339))
			return ErrCannotCancel
		}

		if err := s.reservationRepo.Cancel(txCtx, id, now); err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		reservation.Status = domain.StatusCancelled
		reservation.CancelledAt = &now
		cancelled = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncReservationCancelled()
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(cancelled, now), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return reservation, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: reservation id=%d not found", op, id)
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

// checkOwnerAccess проверяет, что пользователь управляет объектом
func (s *Service) checkOwnerAccess(ctx context.Context, facilityID int64, userID int64) error {
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			s.logger.Warn("checkOwnerAccess: facility id=%d not found", facilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get facility: %v", ErrInternal, err)
	}

	if !facility.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not an owner of facility=%d", userID, facilityID)
		return ErrAccessDenied
	}

	return nil
}
