package schedule

import (
	"fmt"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
	"github.com/Radi03825/PlaySpot-sub000/pkg/types"
)

// pricingEdit разобранный запрос изменения тарифной сетки
type pricingEdit struct {
	dayType  domain.DayType
	start    *types.TimeString
	newStart *types.TimeString
	price    *float64
}

func parseWorkingHours(req *models.SetWorkingHoursRequest) (workingHours, error) {
	dayType, err := domain.ParseDayType(string(req.DayType))
	if err != nil {
		return workingHours{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	wh := workingHours{facilityID: req.FacilityID, dayType: dayType, isOpen: req.IsOpen}
	if !req.IsOpen {
		return wh, nil
	}

	if wh.open, err = types.NewTimeStringFromString(req.Open); err != nil {
		return workingHours{}, fmt.Errorf("%w: open: %v", ErrInvalidInput, err)
	}
	if wh.close, err = types.NewTimeStringFromString(req.Close); err != nil {
		return workingHours{}, fmt.Errorf("%w: close: %v", ErrInvalidInput, err)
	}
	if !wh.open.IsBefore(wh.close) {
		return workingHours{}, fmt.Errorf("%w: open %s must be before close %s", ErrInvalidInput, wh.open, wh.close)
	}

	return wh, nil
}

func parsePricingEdit(req *models.UpsertPricingIntervalRequest) (pricingEdit, error) {
	dayType, err := domain.ParseDayType(string(req.DayType))
	if err != nil {
		return pricingEdit{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	edit := pricingEdit{dayType: dayType, price: req.PricePerHour}

	if req.PricePerHour != nil {
		if err := validatePrice(*req.PricePerHour); err != nil {
			return pricingEdit{}, err
		}
	}

	if req.Start == nil {
		if req.PricePerHour == nil {
			return pricingEdit{}, fmt.Errorf("%w: pricePerHour is required for a new interval", ErrInvalidInput)
		}
		if req.NewStart != nil {
			return pricingEdit{}, fmt.Errorf("%w: newStart requires start", ErrInvalidInput)
		}
		return edit, nil
	}

	start, err := types.NewTimeStringFromString(*req.Start)
	if err != nil {
		return pricingEdit{}, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	edit.start = &start

	if req.NewStart != nil {
		newStart, err := types.NewTimeStringFromString(*req.NewStart)
		if err != nil {
			return pricingEdit{}, fmt.Errorf("%w: newStart: %v", ErrInvalidInput, err)
		}
		edit.newStart = &newStart
	}

	if edit.newStart == nil && edit.price == nil {
		return pricingEdit{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return edit, nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidInput)
	}
	if price > domain.MaxPricePerHour {
		return fmt.Errorf("%w: pricePerHour must not exceed %d", ErrInvalidInput, domain.MaxPricePerHour)
	}
	return nil
}
