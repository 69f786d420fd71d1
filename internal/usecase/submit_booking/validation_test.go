package submit_booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// wholeDayKeys возвращает ключи всех слотов суток с шагом step минут
func wholeDayKeys(step int) []string {
	keys := make([]string, 0, types.MinutesPerDay/step)
	for m := 0; m < types.MinutesPerDay; m += step {
		end := m + step
		keys = append(keys, fmt.Sprintf("%02d:%02d-%02d:%02d", m/60, m%60, end/60, end%60))
	}
	return keys
}

func TestMaxSlotsPerSubmission_CoversWholeDayAtFinestGranularity(t *testing.T) {
	assert.Equal(t, 288, domain.MaxSlotsPerSubmission)
	assert.Len(t, wholeDayKeys(domain.MinSlotGranularityMinutes), domain.MaxSlotsPerSubmission)
}

func TestValidateRequest_SlotCount(t *testing.T) {
	keys := wholeDayKeys(domain.MinSlotGranularityMinutes)
	require.Equal(t, "23:55-24:00", keys[len(keys)-1])

	t.Run("whole day at finest granularity", func(t *testing.T) {
		err := validateRequest(&Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: keys})
		assert.NoError(t, err)
	})

	t.Run("more than a day", func(t *testing.T) {
		over := append(append([]string{}, keys...), "00:00-00:05")
		err := validateRequest(&Request{UserID: 2, FacilityID: 1, Date: tuesday, Slots: over})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
