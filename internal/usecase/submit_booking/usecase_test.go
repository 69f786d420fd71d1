package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	facilityClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	"github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/memory"
	reservationRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/reservation"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

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

func (m *mockMetrics) AddReservationsCreated(n int) { m.Called(n) }
func (m *mockMetrics) IncBookingConflict()          { m.Called() }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

// failingStore отказывает на n-м создании бронирования. По умолчанию - "disk full".
type failingStore struct {
	*memory.Store
	failOn int
	calls  int
	err    error
}

func (f *failingStore) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.calls++
	if f.calls == f.failOn {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("disk full")
	}
	return f.Store.Create(ctx, r)
}

// 2025-06-10 - вторник, 2025-06-14 - суббота
var (
	tuesday  = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
)

func ts(s string) types.TimeString { return types.MustTimeString(s) }

func seedSchedule(t *testing.T, store *memory.Store) {
	t.Helper()

	day := &domain.DaySchedule{
		WorkingHours: domain.WorkingHours{
			FacilityID: 1,
			DayType:    domain.DayTypeWeekday,
			IsOpen:     true,
			Open:       ts("09:00"),
			Close:      ts("13:00"),
		},
		Intervals: []domain.PricingInterval{
			{FacilityID: 1, DayType: domain.DayTypeWeekday, Start: ts("09:00"), End: ts("11:00"), PricePerHour: 10},
			{FacilityID: 1, DayType: domain.DayTypeWeekday, Start: ts("11:00"), End: ts("13:00"), PricePerHour: 15},
		},
	}
	require.NoError(t, store.Do(context.Background(), func(ctx context.Context) error {
		return store.SaveDay(ctx, day)
	}))
}

func newClient() *mockFacilityClient {
	client := &mockFacilityClient{}
	client.On("GetFacility", mock.Anything, int64(1)).
		Return(&domain.Facility{ID: 1, OwnerID: 7, SlotGranularityMinutes: 60}, nil)
	client.On("GetFacility", mock.Anything, int64(404)).Return(nil, facilityClient.ErrFacilityNotFound)
	return client
}

func newUseCase(repo ReservationRepository, store *memory.Store, metrics Metrics) *UseCase {
	return NewUseCase(repo, store, newClient(), store, metrics, time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime{now: tuesday.Add(-24 * time.Hour)})
}

func activeOnTuesday(t *testing.T, store *memory.Store) []*domain.Reservation {
	t.Helper()
	from, to := tuesday, tuesday.AddDate(0, 0, 1)
	list, err := store.GetByFacilityWithFilter(context.Background(), domain.FacilityReservationsFilter{
		FacilityID: 1, From: &from, To: &to,
	})
	require.NoError(t, err)
	return list
}

func TestExecute_CreatesReservationPerRun(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)

	metrics := &mockMetrics{}
	metrics.On("AddReservationsCreated", 2).Once()

	uc := newUseCase(store, store, metrics)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     2,
		FacilityID: 1,
		Date:       tuesday,
		Slots:      []string{"12:00-13:00", "10:00-11:00", "09:00-10:00"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)

	first, second := resp.Reservations[0], resp.Reservations[1]
	assert.Equal(t, tuesday.Add(9*time.Hour), first.StartTime)
	assert.Equal(t, tuesday.Add(11*time.Hour), first.EndTime)
	assert.Equal(t, 20.0, first.TotalPrice)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, int64(2), first.UserID)

	assert.Equal(t, tuesday.Add(12*time.Hour), second.StartTime)
	assert.Equal(t, 15.0, second.TotalPrice)
	assert.Equal(t, 35.0, resp.TotalPrice)

	assert.Len(t, activeOnTuesday(t, store), 2)
	metrics.AssertExpectations(t)
}

func TestExecute_RunAcrossPriceTiers(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)
	uc := newUseCase(store, store, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 2, FacilityID: 1, Date: tuesday,
		Slots: []string{"10:00-11:00", "11:00-12:00"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, 25.0, resp.Reservations[0].TotalPrice)
}

func TestExecute_ConflictCreatesNothing(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)

	_, err := store.Create(context.Background(), &domain.Reservation{
		FacilityID: 1, UserID: 3,
		StartTime: tuesday.Add(11 * time.Hour), EndTime: tuesday.Add(12 * time.Hour),
		Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	metrics := &mockMetrics{}
	metrics.On("IncBookingConflict").Once()
	uc := newUseCase(store, store, metrics)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 2, FacilityID: 1, Date: tuesday,
		Slots: []string{"09:00-10:00", "11:00-12:00", "12:00-13:00"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "11:00-13:00", conflict.Run)

	assert.Len(t, activeOnTuesday(t, store), 1)
	metrics.AssertExpectations(t)
}

func TestExecute_RollsBackOnFailure(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)
	repo := &failingStore{Store: store, failOn: 2}
	uc := newUseCase(repo, store, nil)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 2, FacilityID: 1, Date: tuesday,
		Slots: []string{"09:00-10:00", "12:00-13:00"},
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, activeOnTuesday(t, store))
}

// Пересечение, которое пропустила проверка занятости и поймало хранилище
// (гонка с параллельной транзакцией), отдаётся как конфликт по этому прогону.
func TestExecute_StorageOverlapBecomesConflict(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)
	repo := &failingStore{
		Store:  store,
		failOn: 2,
		err:    fmt.Errorf("%w: Create - 12:00-13:00", reservationRepo.ErrOverlap),
	}

	metrics := &mockMetrics{}
	metrics.On("IncBookingConflict").Once()
	uc := newUseCase(repo, store, metrics)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 2, FacilityID: 1, Date: tuesday,
		Slots: []string{"09:00-10:00", "12:00-13:00"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "12:00-13:00", conflict.Run)

	assert.Equal(t, 2, repo.calls)
	assert.Empty(t, activeOnTuesday(t, store))
	metrics.AssertExpectations(t)
}

func TestExecute_Rejections(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)

	tooMany := make([]string, domain.MaxSlotsPerSubmission+1)
	for i := range tooMany {
		tooMany[i] = "09:00-10:00"
	}

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"no user", &Request{FacilityID: 1, Date: tuesday, Slots: []string{"09:00-10:00"}}, ErrInvalidInput},
		{"no slots", &Request{UserID: 2, FacilityID: 1, Date: tuesday}, ErrInvalidInput},
		{"too many slots", &Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: tooMany}, ErrInvalidInput},
		{"malformed key", &Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: []string{"nine-ten"}}, ErrInvalidInput},
		{"outside hours", &Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: []string{"08:00-09:00"}}, ErrInvalidInput},
		{"misaligned", &Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: []string{"09:30-10:30"}}, ErrInvalidInput},
		{"duplicate", &Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: []string{"09:00-10:00", "09:00-10:00"}}, ErrInvalidInput},
		{"closed day", &Request{UserID: 2, FacilityID: 1, Date: saturday, Slots: []string{"09:00-10:00"}}, ErrFacilityClosed},
		{"unknown facility", &Request{UserID: 2, FacilityID: 404, Date: tuesday, Slots: []string{"09:00-10:00"}}, ErrFacilityNotFound},
	}

	uc := newUseCase(store, store, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, activeOnTuesday(t, store))
}

func TestExecute_RejectsStartedSlot(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)
	uc := NewUseCase(store, store, newClient(), store, nil, time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime{now: tuesday.Add(10*time.Hour + 30*time.Minute)})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 2, FacilityID: 1, Date: tuesday,
		Slots: []string{"10:00-11:00", "11:00-12:00"},
	})
	assert.ErrorIs(t, err, ErrSlotInPast)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 2, FacilityID: 1, Date: tuesday,
		Slots: []string{"11:00-12:00"},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestExecute_ConcurrentSubmissionsAdmitOne(t *testing.T) {
	store := memory.NewStore()
	seedSchedule(t, store)
	uc := newUseCase(store, store, nil)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID: userID, FacilityID: 1, Date: tuesday,
				Slots: []string{"10:00-11:00", "11:00-12:00"},
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrConflict):
				conflicts++
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, activeOnTuesday(t, store), 1)
}
