package slots

import "errors"

var (
	// ErrEmptySelection возвращается, если не выбран ни один слот
	ErrEmptySelection = errors.New("slots: empty selection")

	// ErrSlotUnavailable возвращается, если выбран занятый или прошедший слот
	ErrSlotUnavailable = errors.New("slots: slot is not available")

	// ErrMixedDates возвращается, если выбраны слоты разных дат
	ErrMixedDates = errors.New("slots: slots belong to different dates")

	// ErrDuplicateSlot возвращается, если слот выбран дважды
	ErrDuplicateSlot = errors.New("slots: duplicate slot")

	// ErrInvalidSlot возвращается при некорректном слоте или ключе слота
	ErrInvalidSlot = errors.New("slots: invalid slot")

	// ErrUnknownSlot возвращается, если ключ не совпадает ни с одним слотом сетки
	ErrUnknownSlot = errors.New("slots: slot does not exist in the grid")
)
