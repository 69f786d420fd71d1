package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
	"github.com/Radi03825/PlaySpot-sub000/pkg/requestid"
)

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status)
}

func TestAuth(t *testing.T) {
	var gotUserID int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, header := range []string{"", "abc", "0", "-5"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(UserIDHeader, header)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(UserIDHeader, "42")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(42), gotUserID)
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx, _ = requestid.FromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(requestid.Header)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, fromCtx)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(requestid.Header, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", w.Header().Get(requestid.Header))
	assert.Equal(t, "abc-123", fromCtx)
}

func TestLogging_RecoversPanic(t *testing.T) {
	h := Logging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &mockMetrics{}
	m.On("ObserveHTTPRequest", http.MethodGet, "/facilities/{facilityId}", http.StatusTeapot).Once()

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/facilities/{facilityId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/facilities/17", nil))
	m.AssertExpectations(t)
}

func TestRateLimiter_PerUser(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	h := Auth(limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	call := func(userID string) int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set(UserIDHeader, userID)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("1"))
	assert.Equal(t, http.StatusOK, call("1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1"))

	// У другого пользователя свой лимит
	assert.Equal(t, http.StatusOK, call("2"))
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	now := start

	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = start

	limiter.get("user:1")
	limiter.get("user:2")
	require.Equal(t, 2, limiter.size())

	// До истечения простоя ключи сохраняются, даже если прошёл интервал обхода
	now = start.Add(minIdleTTL / 2)
	limiter.get("user:2")
	assert.Equal(t, 2, limiter.size())

	// user:1 простаивает дольше idleTTL и удаляется, user:2 недавно был активен
	now = start.Add(minIdleTTL + sweepInterval)
	limiter.get("user:3")
	assert.Equal(t, 2, limiter.size())

	limiter.mu.Lock()
	_, hasFirst := limiter.visitors["user:1"]
	_, hasSecond := limiter.visitors["user:2"]
	limiter.mu.Unlock()
	assert.False(t, hasFirst)
	assert.True(t, hasSecond)
}

func TestRateLimiter_EvictedKeyStartsWithFullBurst(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	assert.True(t, limiter.get("ip:10.0.0.1").AllowN(now, 2))
	assert.False(t, limiter.get("ip:10.0.0.1").AllowN(now, 1))

	now = now.Add(minIdleTTL + sweepInterval)
	limiter.get("ip:10.0.0.2")
	assert.True(t, limiter.get("ip:10.0.0.1").AllowN(now, 2))
}
