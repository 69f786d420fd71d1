package set_working_hours

import (
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
)

// SetWorkingHoursRequest HTTP request model
type SetWorkingHoursRequest struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open,omitempty"`  // "08:00"
	Close  string `json:"close,omitempty"` // "22:00" или "24:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetWorkingHoursRequest) ToServiceRequest(userID, facilityID int64, dayType string) *models.SetWorkingHoursRequest {
	return &models.SetWorkingHoursRequest{
		UserID:     userID,
		FacilityID: facilityID,
		DayType:    domain.DayType(dayType),
		IsOpen:     r.IsOpen,
		Open:       r.Open,
		Close:      r.Close,
	}
}
