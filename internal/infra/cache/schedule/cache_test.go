package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/memory"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

type countingStore struct {
	Store
	calls int
}

func (c *countingStore) GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error) {
	c.calls++
	return c.Store.GetSchedule(ctx, facilityID)
}

func setup(t *testing.T) (*CachedStore, *countingStore, *memory.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mem := memory.NewStore()
	counting := &countingStore{Store: mem}
	return NewCachedStore(counting, client, time.Minute, nil, logger.NewNop()), counting, mem, mr
}

func saveWeekday(t *testing.T, mem *memory.Store, price float64) {
	t.Helper()

	day := &domain.DaySchedule{
		WorkingHours: domain.WorkingHours{
			FacilityID: 1,
			DayType:    domain.DayTypeWeekday,
			IsOpen:     true,
			Open:       types.MustTimeString("10:00"),
			Close:      types.MustTimeString("24:00"),
		},
		Intervals: []domain.PricingInterval{
			{Start: types.MustTimeString("10:00"), End: types.MustTimeString("24:00"), PricePerHour: price},
		},
	}
	require.NoError(t, mem.Do(context.Background(), func(ctx context.Context) error {
		return mem.SaveDay(ctx, day)
	}))
}

func TestGetSchedule_ReadThrough(t *testing.T) {
	cache, counting, mem, mr := setup(t)
	ctx := context.Background()
	saveWeekday(t, mem, 10)

	first, err := cache.GetSchedule(ctx, 1)
	require.NoError(t, err)
	second, err := cache.GetSchedule(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, counting.calls)
	assert.True(t, mr.Exists(cacheKey(1)))

	day, ok := second.Day(domain.DayTypeWeekday)
	require.True(t, ok)
	assert.Equal(t, types.MustTimeString("24:00"), day.WorkingHours.Close)
	assert.Equal(t, first.Days[domain.DayTypeWeekday].Intervals, day.Intervals)
}

func TestInvalidate(t *testing.T) {
	cache, counting, mem, mr := setup(t)
	ctx := context.Background()
	saveWeekday(t, mem, 10)

	_, err := cache.GetSchedule(ctx, 1)
	require.NoError(t, err)

	saveWeekday(t, mem, 20)
	require.NoError(t, cache.Invalidate(ctx, 1))
	assert.False(t, mr.Exists(cacheKey(1)))

	got, err := cache.GetSchedule(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.calls)
	assert.Equal(t, 20.0, got.Days[domain.DayTypeWeekday].Intervals[0].PricePerHour)
}

func TestGetSchedule_CorruptedEntryFallsBack(t *testing.T) {
	cache, counting, mem, mr := setup(t)
	saveWeekday(t, mem, 10)
	require.NoError(t, mr.Set(cacheKey(1), "{broken"))

	got, err := cache.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.calls)
	assert.Contains(t, got.Days, domain.DayTypeWeekday)
}

func TestDisabledCachePassesThrough(t *testing.T) {
	mem := memory.NewStore()
	counting := &countingStore{Store: mem}
	cache := NewCachedStore(counting, nil, time.Minute, nil, logger.NewNop())

	_, err := cache.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	_, err = cache.GetSchedule(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, counting.calls)
	assert.NoError(t, cache.Invalidate(context.Background(), 1))
}
