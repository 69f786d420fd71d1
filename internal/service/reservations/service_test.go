package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	facilityClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	"github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/memory"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations/models"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
	"github.com/Radi03825/PlaySpot-sub000/pkg/ptr"
)

const (
	ownerID  int64 = 7
	authorID int64 = 2
	otherID  int64 = 3
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type mockFacilityClient struct {
	mock.Mock
}

func (m *mockFacilityClient) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncReservationPaid()      { m.Called() }
func (m *mockMetrics) IncReservationCancelled() { m.Called() }

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type fixture struct {
	svc      *Service
	metrics  *mockMetrics
	upcoming *domain.Reservation // автор, завтра, pending
	past     *domain.Reservation // автор, вчера, confirmed
	foreign  *domain.Reservation // другой пользователь, завтра, confirmed
}

func setup(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	create := func(userID int64, dayOffset, hour int, status domain.ReservationStatus) *domain.Reservation {
		day := time.Date(2025, 6, 10+dayOffset, 0, 0, 0, 0, time.UTC)
		r, err := store.Create(context.Background(), &domain.Reservation{
			FacilityID: 1,
			UserID:     userID,
			StartTime:  day.Add(time.Duration(hour) * time.Hour),
			EndTime:    day.Add(time.Duration(hour+1) * time.Hour),
			Status:     status,
			TotalPrice: 10,
		})
		require.NoError(t, err)
		return r
	}

	client := &mockFacilityClient{}
	client.On("GetFacility", mock.Anything, int64(1)).Return(&domain.Facility{ID: 1, OwnerID: ownerID}, nil)
	client.On("GetFacility", mock.Anything, int64(404)).Return(nil, facilityClient.ErrFacilityNotFound)

	metrics := &mockMetrics{}

	f := &fixture{
		svc:      NewService(store, client, store, metrics, logger.NewNop()).WithTimeProvider(fixedTime{}),
		metrics:  metrics,
		upcoming: create(authorID, 1, 10, domain.StatusPending),
		past:     create(authorID, -1, 10, domain.StatusConfirmed),
		foreign:  create(otherID, 1, 12, domain.StatusConfirmed),
	}
	return f
}

func TestGetByID_Access(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, f.upcoming.ID, authorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)

	_, err = f.svc.GetByID(ctx, f.upcoming.ID, ownerID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, f.upcoming.ID, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, 999, authorID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// Подтверждённое прошедшее бронирование отдаётся как completed
	resp, err = f.svc.GetByID(ctx, f.past.ID, authorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestGetUserReservations_StatusFilter(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		status *string
		want   []int64
	}{
		{"all", nil, []int64{f.upcoming.ID, f.past.ID}},
		{"pending", ptr.Ptr("pending"), []int64{f.upcoming.ID}},
		{"completed", ptr.Ptr("completed"), []int64{f.past.ID}},
		{"confirmed excludes completed", ptr.Ptr("confirmed"), []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{
				UserID: authorID, RequesterID: authorID, Status: tt.status,
			})
			require.NoError(t, err)

			ids := make([]int64, 0, len(resp.Reservations))
			for _, r := range resp.Reservations {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetUserReservations_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: authorID, RequesterID: otherID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{
		UserID: authorID, RequesterID: authorID, Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFacilityReservations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.GetFacilityReservations(ctx, &models.GetFacilityReservationsRequest{UserID: ownerID, FacilityID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 3)

	from := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	resp, err = f.svc.GetFacilityReservations(ctx, &models.GetFacilityReservationsRequest{
		UserID: ownerID, FacilityID: 1, From: &from, To: &to,
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)
	assert.Equal(t, f.upcoming.ID, resp.Reservations[0].ID)

	_, err = f.svc.GetFacilityReservations(ctx, &models.GetFacilityReservationsRequest{UserID: authorID, FacilityID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetFacilityReservations(ctx, &models.GetFacilityReservationsRequest{UserID: ownerID, FacilityID: 404})
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = f.svc.GetFacilityReservations(ctx, &models.GetFacilityReservationsRequest{
		UserID: ownerID, FacilityID: 1, From: &to, To: &from,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPay(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.metrics.On("IncReservationPaid").Once()

	_, err := f.svc.Pay(ctx, f.upcoming.ID, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.Pay(ctx, f.upcoming.ID, authorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	_, err = f.svc.Pay(ctx, f.upcoming.ID, authorID)
	assert.ErrorIs(t, err, ErrCannotPay)

	_, err = f.svc.Pay(ctx, 999, authorID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	f.metrics.AssertExpectations(t)
}

func TestCancel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.metrics.On("IncReservationCancelled").Once()

	_, err := f.svc.Cancel(ctx, f.foreign.ID, authorID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Начавшееся бронирование отменить нельзя
	_, err = f.svc.Cancel(ctx, f.past.ID, authorID)
	assert.ErrorIs(t, err, ErrCannotCancel)

	resp, err := f.svc.Cancel(ctx, f.upcoming.ID, authorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, now, *resp.CancelledAt)

	// Отмена необратима
	_, err = f.svc.Cancel(ctx, f.upcoming.ID, authorID)
	assert.ErrorIs(t, err, ErrCannotCancel)
	_, err = f.svc.Pay(ctx, f.upcoming.ID, authorID)
	assert.ErrorIs(t, err, ErrCannotPay)

	list, err := f.svc.GetFacilityReservations(ctx, &models.GetFacilityReservationsRequest{
		UserID: ownerID, FacilityID: 1, Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, f.upcoming.ID, list.Reservations[0].ID)

	f.metrics.AssertExpectations(t)
}
