package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_StateMachine(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	future := &Reservation{
		Status:    StatusPending,
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(3 * time.Hour),
	}

	assert.True(t, future.IsActive())
	assert.True(t, future.CanBePaid())
	assert.True(t, future.CanBeCancelled(now))
	assert.Equal(t, StatusPending, future.EffectiveStatus(now))

	future.Status = StatusConfirmed
	assert.False(t, future.CanBePaid())
	assert.True(t, future.CanBeCancelled(now))
	assert.Equal(t, StatusConfirmed, future.EffectiveStatus(now))
	assert.Equal(t, StatusCompleted, future.EffectiveStatus(now.Add(2*time.Hour)))
	assert.False(t, future.CanBeCancelled(now.Add(2*time.Hour)))

	future.Status = StatusCancelled
	assert.False(t, future.IsActive())
	assert.False(t, future.CanBeCancelled(now))
	assert.Equal(t, StatusCancelled, future.EffectiveStatus(now.Add(5*time.Hour)))
}

func TestReservation_Overlaps(t *testing.T) {
	base := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	r := &Reservation{StartTime: base.Add(10 * time.Hour), EndTime: base.Add(12 * time.Hour)}

	assert.True(t, r.Overlaps(base.Add(11*time.Hour), base.Add(13*time.Hour)))
	assert.True(t, r.Overlaps(base.Add(9*time.Hour), base.Add(11*time.Hour)))
	assert.False(t, r.Overlaps(base.Add(12*time.Hour), base.Add(13*time.Hour)))
	assert.False(t, r.Overlaps(base.Add(8*time.Hour), base.Add(10*time.Hour)))
	assert.Equal(t, 120, r.DurationMinutes())
}

func TestDayTypeOf(t *testing.T) {
	assert.Equal(t, DayTypeWeekday, DayTypeOf(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)))  // понедельник
	assert.Equal(t, DayTypeWeekend, DayTypeOf(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))) // суббота
	assert.Equal(t, DayTypeWeekend, DayTypeOf(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))) // воскресенье

	_, err := ParseDayType("holiday")
	assert.Error(t, err)
}

func TestFacility_Defaults(t *testing.T) {
	f := &Facility{OwnerID: 7}
	assert.Equal(t, DefaultSlotGranularityMinutes, f.Granularity())
	assert.Equal(t, time.UTC, f.Location(nil))
	assert.True(t, f.IsOwner(7))
	assert.False(t, f.IsOwner(8))

	f.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, f.Location(time.UTC))
}
