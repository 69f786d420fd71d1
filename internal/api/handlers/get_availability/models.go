package get_availability

import (
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	getAvailability "github.com/Radi03825/PlaySpot-sub000/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID int64             `json:"facilityId"`
	Timezone   string            `json:"timezone"`
	Days       []DayAvailability `json:"days"`
}

// DayAvailability сетка слотов на дату
type DayAvailability struct {
	Date           string `json:"date"` // "2025-06-10"
	IsOpen         bool   `json:"isOpen"`
	AvailableCount int    `json:"availableCount"`
	Slots          []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	Key          string  `json:"key"`   // "10:00-11:00", передаётся в запрос бронирования
	Start        string  `json:"start"` // "10:00"
	End          string  `json:"end"`   // "11:00"
	PricePerHour float64 `json:"pricePerHour"`
	Price        float64 `json:"price"`
	Available    bool    `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		FacilityID: resp.FacilityID,
		Timezone:   resp.Timezone,
		Days:       make([]DayAvailability, 0, len(resp.Days)),
	}

	for i := range resp.Days {
		day := &resp.Days[i]
		out := DayAvailability{
			Date:           day.Date.Format(domain.DateFormat),
			IsOpen:         day.IsOpen,
			AvailableCount: day.AvailableCount(),
			Slots:          make([]Slot, 0, len(day.Slots)),
		}
		for j := range day.Slots {
			slot := &day.Slots[j]
			out.Slots = append(out.Slots, Slot{
				Key:          slot.Key(),
				Start:        slot.Start.String(),
				End:          slot.End.String(),
				PricePerHour: slot.PricePerHour,
				Price:        domain.RoundPrice(slot.Price()),
				Available:    slot.Available,
			})
		}
		result.Days = append(result.Days, out)
	}

	return result
}
