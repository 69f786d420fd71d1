package facilityservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
	"github.com/Radi03825/PlaySpot-sub000/pkg/requestid"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/facilities/1":
			assert.Equal(t, "req-1", r.Header.Get(requestid.Header))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1,"owner_id":42,"name":"Court A","slot_granularity_minutes":30,"timezone":"Europe/Sofia","is_active":true}`))
		case "/internal/facilities/2":
			_, _ = w.Write([]byte(`{"id":2,"owner_id":42,"name":"Closed","is_active":false}`))
		case "/internal/facilities/3":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		case "/internal/facilities/5":
			_, _ = w.Write([]byte(`{"id":5,"owner_id":42,"name":"Court B","is_active":true}`))
		case "/internal/facilities/4":
			_, _ = w.Write([]byte("{not json"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetFacility(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	facility, err := client.GetFacility(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), facility.OwnerID)
	assert.Equal(t, 30, facility.Granularity())
	assert.Equal(t, "Europe/Sofia", facility.Timezone)
}

func TestGetFacility_DefaultGranularity(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop()).WithDefaultGranularity(15)

	facility, err := client.GetFacility(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 15, facility.Granularity())

	facility, err = client.GetFacility(requestid.WithRequestID(context.Background(), "req-1"), 1)
	require.NoError(t, err)
	assert.Equal(t, 30, facility.Granularity())
}

func TestGetFacility_Errors(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	_, err := client.GetFacility(ctx, 2)
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = client.GetFacility(ctx, 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetFacility(ctx, 4)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetFacility(ctx, 99)
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	exists, err := client.Exists(ctx, 99)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetFacility_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	_, err := client.GetFacility(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
