package domain

import "github.com/Radi03825/PlaySpot-sub000/pkg/types"

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 60
	DefaultMaxRangeDays           = 31
	DefaultInitialPricePerHour    = 0
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 480 // 8 hours
	// целые сутки при минимальном шаге
	MaxSlotsPerSubmission     = types.MinutesPerDay / MinSlotGranularityMinutes
	MaxPricePerHour           = 1_000_000
)

// Time format constants
const (
	TimeFormat       = "15:04"      // HH:MM
	DateFormat       = "2006-01-02" // YYYY-MM-DD
	SlotKeySeparator = "-"
)

// ActiveStatuses статусы, блокирующие время на объекте
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, освобождающие время
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}
