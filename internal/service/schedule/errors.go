package schedule

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("schedule: facility not found")

	// ErrScheduleNotFound возвращается, когда для типа дня не настроена тарифная сетка
	ErrScheduleNotFound = errors.New("schedule: schedule not found")

	// ErrIntervalNotFound возвращается, когда ценовой интервал не найден
	ErrIntervalNotFound = errors.New("schedule: pricing interval not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет объектом
	ErrAccessDenied = errors.New("schedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInvariantViolation возвращается, когда изменение нарушит покрытие рабочего дня
	ErrInvariantViolation = errors.New("schedule: pricing invariant violation")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
