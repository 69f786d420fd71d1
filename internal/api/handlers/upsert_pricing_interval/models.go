package upsert_pricing_interval

import (
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
)

// UpsertPricingIntervalRequest HTTP request model.
// Без start добавляется новый интервал в конец дня с ценой pricePerHour.
type UpsertPricingIntervalRequest struct {
	Start        *string  `json:"start,omitempty"`    // "10:00" - начало изменяемого интервала
	NewStart     *string  `json:"newStart,omitempty"` // "10:30" - новая граница
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertPricingIntervalRequest) ToServiceRequest(userID, facilityID int64, dayType string) *models.UpsertPricingIntervalRequest {
	return &models.UpsertPricingIntervalRequest{
		UserID:       userID,
		FacilityID:   facilityID,
		DayType:      domain.DayType(dayType),
		Start:        r.Start,
		NewStart:     r.NewStart,
		PricePerHour: r.PricePerHour,
	}
}
