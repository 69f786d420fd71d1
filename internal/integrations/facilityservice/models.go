package facilityservice

import "github.com/Radi03825/PlaySpot-sub000/internal/domain"

// Facility модель объекта из каталога объектов
type Facility struct {
	ID                     int64  `json:"id"`
	OwnerID                int64  `json:"owner_id"`
	Name                   string `json:"name"`
	SlotGranularityMinutes int    `json:"slot_granularity_minutes"`
	Timezone               string `json:"timezone"`
	IsActive               bool   `json:"is_active"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (f *Facility) ToDomain() *domain.Facility {
	return &domain.Facility{
		ID:                     f.ID,
		OwnerID:                f.OwnerID,
		Name:                   f.Name,
		SlotGranularityMinutes: f.SlotGranularityMinutes,
		Timezone:               f.Timezone,
	}
}

// ErrorResponse модель ошибки от каталога объектов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
