package intervalset

import "errors"

var (
	// ErrInvariantViolation возвращается, когда изменение нарушит покрытие [open, close)
	ErrInvariantViolation = errors.New("intervalset: invariant violation")

	// ErrIntervalNotFound возвращается, когда интервал с указанным началом не найден
	ErrIntervalNotFound = errors.New("intervalset: interval not found")

	// ErrInvalidRange возвращается при некорректном родительском диапазоне
	ErrInvalidRange = errors.New("intervalset: invalid parent range")

	// ErrMisaligned возвращается, когда граница не кратна шагу сетки
	ErrMisaligned = errors.New("intervalset: boundary is not aligned to granularity")

	// ErrInvalidPrice возвращается при отрицательной цене
	ErrInvalidPrice = errors.New("intervalset: invalid price")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("intervalset: invalid time")
)
