package submit_booking

import (
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	submitBooking "github.com/Radi03825/PlaySpot-sub000/internal/usecase/submit_booking"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Date  string   `json:"date"`  // "2025-06-10"
	Slots []string `json:"slots"` // ["10:00-10:30", "10:30-11:00"]
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPrice   float64               `json:"totalPrice"`
}

// ReservationResponse созданное бронирование
type ReservationResponse struct {
	ID              int64   `json:"id"`
	FacilityID      int64   `json:"facilityId"`
	UserID          int64   `json:"userId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(userID, facilityID int64) (*submitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		UserID:     userID,
		FacilityID: facilityID,
		Date:       date,
		Slots:      r.Slots,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	result := &SubmitBookingResponse{
		Reservations: make([]ReservationResponse, 0, len(resp.Reservations)),
		TotalPrice:   resp.TotalPrice,
	}

	for _, r := range resp.Reservations {
		result.Reservations = append(result.Reservations, ReservationResponse{
			ID:              r.ID,
			FacilityID:      r.FacilityID,
			UserID:          r.UserID,
			StartTime:       r.StartTime.Format(time.RFC3339),
			EndTime:         r.EndTime.Format(time.RFC3339),
			DurationMinutes: r.DurationMinutes(),
			Status:          string(r.Status),
			TotalPrice:      r.TotalPrice,
			CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		})
	}

	return result
}
