package get_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations"
	"github.com/Radi03825/PlaySpot-sub000/internal/service/reservations/models"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

func serve(h *Handler, id string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/reservations/{reservationId}", middleware.Auth(http.HandlerFunc(h.Handle)))

	req := httptest.NewRequest(http.MethodGet, "/reservations/"+id, nil)
	req.Header.Set(middleware.UserIDHeader, "7")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandle_Found(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	svc := &mockService{}
	svc.On("GetByID", mock.Anything, int64(5), int64(7)).Return(&models.ReservationResponse{
		ID:              5,
		FacilityID:      1,
		UserID:          7,
		StartTime:       start,
		EndTime:         start.Add(2 * time.Hour),
		DurationMinutes: 120,
		Status:          "pending",
		TotalPrice:      20,
	}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), "5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.True(t, start.Equal(resp.StartTime))
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{reservations.ErrReservationNotFound, http.StatusNotFound},
		{reservations.ErrAccessDenied, http.StatusForbidden},
		{reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetByID", mock.Anything, int64(5), int64(7)).Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(NewHandler(svc, logger.NewNop()), "5").Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(svc, logger.NewNop()), "-3").Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
