package submit_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	submitBooking "github.com/Radi03825/PlaySpot-sub000/internal/usecase/submit_booking"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submitBooking.Response), args.Error(1)
}

func serve(h *Handler, facility, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/facilities/{facilityId}/bookings", middleware.Auth(http.HandlerFunc(h.Handle)))

	req := httptest.NewRequest(http.MethodPost, "/facilities/"+facility+"/bookings", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "7")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandle_Created(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &submitBooking.Request{
		UserID:     7,
		FacilityID: 1,
		Date:       date,
		Slots:      []string{"10:00-11:00"},
	}).Return(&submitBooking.Response{
		Reservations: []*domain.Reservation{{
			ID:         11,
			FacilityID: 1,
			UserID:     7,
			StartTime:  date.Add(10 * time.Hour),
			EndTime:    date.Add(11 * time.Hour),
			Status:     domain.StatusPending,
			TotalPrice: 10,
		}},
		TotalPrice: 10,
	}, nil)

	w := serve(NewHandler(uc, logger.NewNop()), "1", `{"date":"2025-06-10","slots":["10:00-11:00"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp SubmitBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(11), resp.Reservations[0].ID)
	assert.Equal(t, 60, resp.Reservations[0].DurationMinutes)
	assert.Equal(t, "pending", resp.Reservations[0].Status)
	assert.Equal(t, 10.0, resp.TotalPrice)
	uc.AssertExpectations(t)
}

func TestHandle_ConflictNamesRun(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &submitBooking.ConflictError{Run: "11:00-13:00"})

	w := serve(NewHandler(uc, logger.NewNop()), "1", `{"date":"2025-06-10","slots":["11:00-12:00"]}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "11:00-13:00")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		facility string
		body     string
		ucErr    error
		want     int
	}{
		{"invalid facility", "x", `{"date":"2025-06-10","slots":["10:00-11:00"]}`, nil, http.StatusBadRequest},
		{"empty body", "1", ``, nil, http.StatusBadRequest},
		{"unknown field", "1", `{"date":"2025-06-10","slots":[],"extra":1}`, nil, http.StatusBadRequest},
		{"bad date", "1", `{"date":"10/06/2025","slots":["10:00-11:00"]}`, nil, http.StatusBadRequest},
		{"not found", "1", `{"date":"2025-06-10","slots":["10:00-11:00"]}`, submitBooking.ErrFacilityNotFound, http.StatusNotFound},
		{"closed", "1", `{"date":"2025-06-10","slots":["10:00-11:00"]}`, submitBooking.ErrFacilityClosed, http.StatusBadRequest},
		{"past", "1", `{"date":"2025-06-10","slots":["10:00-11:00"]}`, submitBooking.ErrSlotInPast, http.StatusBadRequest},
		{"invalid", "1", `{"date":"2025-06-10","slots":["10:00-11:00"]}`, submitBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "1", `{"date":"2025-06-10","slots":["10:00-11:00"]}`, submitBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			w := serve(NewHandler(uc, logger.NewNop()), tt.facility, tt.body)
			assert.Equal(t, tt.want, w.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandle_RequiresUser(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/facilities/{facilityId}/bookings",
		middleware.Auth(http.HandlerFunc(NewHandler(&mockUseCase{}, logger.NewNop()).Handle)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/facilities/1/bookings",
		strings.NewReader(`{"date":"2025-06-10","slots":["10:00-11:00"]}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
