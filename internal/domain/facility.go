package domain

import "time"

// Facility спортивный объект из внешнего каталога объектов
type Facility struct {
	ID                     int64
	OwnerID                int64
	Name                   string
	SlotGranularityMinutes int
	Timezone               string
}

// Granularity returns the slot step in minutes, falling back to the default
func (f *Facility) Granularity() int {
	if f.SlotGranularityMinutes <= 0 {
		return DefaultSlotGranularityMinutes
	}
	return f.SlotGranularityMinutes
}

// Location returns the facility time zone or the fallback when it is unknown
func (f *Facility) Location(fallback *time.Location) *time.Location {
	if f.Timezone != "" {
		if loc, err := time.LoadLocation(f.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}

// IsOwner returns true if the user manages the facility
func (f *Facility) IsOwner(userID int64) bool {
	return f.OwnerID != 0 && f.OwnerID == userID
}
