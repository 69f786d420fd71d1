package upsert_pricing_interval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/schedule/models"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpsertPricingInterval(ctx context.Context, req *models.UpsertPricingIntervalRequest) (*models.DayScheduleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DayScheduleResponse), args.Error(1)
}

func serve(h *Handler, facilityID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/facilities/{facilityId}/schedule/{dayType}/pricing", middleware.Auth(http.HandlerFunc(h.Handle)))

	req := httptest.NewRequest(http.MethodPut, "/facilities/"+facilityID+"/schedule/weekend/pricing", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "7")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandle_MovesBoundary(t *testing.T) {
	start, newStart, price := "10:00", "10:30", 12.5

	svc := &mockService{}
	svc.On("UpsertPricingInterval", mock.Anything, &models.UpsertPricingIntervalRequest{
		UserID:       7,
		FacilityID:   1,
		DayType:      domain.DayTypeWeekend,
		Start:        &start,
		NewStart:     &newStart,
		PricePerHour: &price,
	}).Return(&models.DayScheduleResponse{
		DayType: domain.DayTypeWeekend,
		IsOpen:  true,
		Open:    "08:00",
		Close:   "20:00",
		Intervals: []models.IntervalResponse{
			{Start: "08:00", End: "10:30", PricePerHour: 10},
			{Start: "10:30", End: "20:00", PricePerHour: 12.5},
		},
	}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), "1", `{"start":"10:00","newStart":"10:30","pricePerHour":12.5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DayScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Intervals, 2)
	assert.Equal(t, "10:30", resp.Intervals[1].Start)
	assert.Equal(t, 12.5, resp.Intervals[1].PricePerHour)
	svc.AssertExpectations(t)
}

func TestHandle_AppendWithoutStart(t *testing.T) {
	price := 8.0

	svc := &mockService{}
	svc.On("UpsertPricingInterval", mock.Anything, mock.MatchedBy(func(req *models.UpsertPricingIntervalRequest) bool {
		return req.Start == nil && req.NewStart == nil && req.PricePerHour != nil && *req.PricePerHour == price
	})).Return(&models.DayScheduleResponse{DayType: domain.DayTypeWeekend, Intervals: []models.IntervalResponse{}}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), "1", `{"pricePerHour":8}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: newStart must be aligned", schedule.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: interval would be empty", schedule.ErrInvariantViolation), http.StatusUnprocessableEntity},
		{schedule.ErrScheduleNotFound, http.StatusNotFound},
		{schedule.ErrIntervalNotFound, http.StatusNotFound},
		{schedule.ErrFacilityNotFound, http.StatusNotFound},
		{schedule.ErrAccessDenied, http.StatusForbidden},
		{schedule.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpsertPricingInterval", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(svc, logger.NewNop()), "1", `{"start":"10:00","pricePerHour":5}`)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name       string
		facilityID string
		body       string
	}{
		{"invalid facility id", "abc", `{"pricePerHour":5}`},
		{"non-positive facility id", "0", `{"pricePerHour":5}`},
		{"invalid body", "1", `{"pricePerHour":"five"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			w := serve(NewHandler(svc, logger.NewNop()), tt.facilityID, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "UpsertPricingInterval", mock.Anything, mock.Anything)
		})
	}
}
