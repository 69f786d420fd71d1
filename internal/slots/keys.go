package slots

import (
	"fmt"
	"strings"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// ParseKey разбирает ключ слота "HH:MM-HH:MM"
func ParseKey(key string) (types.TimeString, types.TimeString, error) {
	parts := strings.Split(strings.TrimSpace(key), domain.SlotKeySeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: key %q", ErrInvalidSlot, key)
	}

	start, err := types.NewTimeStringFromString(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("%w: key %q: %v", ErrInvalidSlot, key, err)
	}
	end, err := types.NewTimeStringFromString(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w: key %q: %v", ErrInvalidSlot, key, err)
	}
	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: key %q: start must be before end", ErrInvalidSlot, key)
	}

	return start, end, nil
}

// Resolve находит в сетке слоты по ключам, сохраняя цену и доступность из сетки
func Resolve(grid []domain.AvailableSlot, keys []string) ([]domain.AvailableSlot, error) {
	if len(keys) == 0 {
		return nil, ErrEmptySelection
	}

	index := make(map[string]int, len(grid))
	for i := range grid {
		index[grid[i].Key()] = i
	}

	seen := make(map[string]struct{}, len(keys))
	result := make([]domain.AvailableSlot, 0, len(keys))
	for _, key := range keys {
		start, end, err := ParseKey(key)
		if err != nil {
			return nil, err
		}

		normalized := domain.SlotKey(start, end)
		if _, ok := seen[normalized]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, normalized)
		}
		seen[normalized] = struct{}{}

		i, ok := index[normalized]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, normalized)
		}
		result = append(result, grid[i])
	}

	return result, nil
}
