package submit_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("submit_booking: facility not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrFacilityClosed возвращается, когда объект в эту дату не работает
	ErrFacilityClosed = errors.New("submit_booking: facility is closed on this date")

	// ErrSlotInPast возвращается при попытке забронировать начавшийся слот
	ErrSlotInPast = errors.New("submit_booking: slot is in the past")

	// ErrConflict возвращается, когда выбранное время уже занято
	ErrConflict = errors.New("submit_booking: slots are already reserved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// ConflictError сообщает, какой отрезок пересёкся с существующим бронированием
type ConflictError struct {
	Run string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict.Error(), e.Run)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
