package get_availability

import (
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	FacilityID int64
	From       time.Time // Первая дата периода (включительно)
	To         time.Time // Дата окончания периода (не включая)
}

// Response модель ответа с сеткой слотов по дням
type Response struct {
	FacilityID int64
	Timezone   string
	Days       []domain.DayAvailability
}
