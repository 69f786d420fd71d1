package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// База данных
	dbQueries       *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	// Бронирования
	reservationsCreated  prometheus.Counter
	bookingConflicts     prometheus.Counter
	reservationsCanceled prometheus.Counter
	reservationsPaid     prometheus.Counter

	// Кэш расписаний
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections.",
			ConstLabels: constLabels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: constLabels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}),

		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations admitted by booking submissions.",
			ConstLabels: constLabels,
		}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking submissions rejected because of an overlapping reservation.",
			ConstLabels: constLabels,
		}),
		reservationsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_cancelled_total",
			Help:        "Reservations cancelled by users.",
			ConstLabels: constLabels,
		}),
		reservationsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_paid_total",
			Help:        "Reservations confirmed by payment.",
			ConstLabels: constLabels,
		}),

		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_hits_total",
			Help:        "Cache hits.",
			ConstLabels: constLabels,
		}, []string{"cache"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_misses_total",
			Help:        "Cache misses.",
			ConstLabels: constLabels,
		}, []string{"cache"}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbQueryDuration, m.dbOpenConns, m.dbInUseConns, m.dbIdleConns, m.dbWaitCount,
		m.reservationsCreated, m.bookingConflicts, m.reservationsCanceled, m.reservationsPaid,
		m.cacheHits, m.cacheMisses,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// AddReservationsCreated увеличивает счетчик созданных бронирований
func (m *Metrics) AddReservationsCreated(n int) {
	if m == nil {
		return
	}
	m.reservationsCreated.Add(float64(n))
}

// IncBookingConflict увеличивает счетчик конфликтов при бронировании
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflicts.Inc()
}

// IncReservationCancelled увеличивает счетчик отмен
func (m *Metrics) IncReservationCancelled() {
	if m == nil {
		return
	}
	m.reservationsCanceled.Inc()
}

// IncReservationPaid увеличивает счетчик оплат
func (m *Metrics) IncReservationPaid() {
	if m == nil {
		return
	}
	m.reservationsPaid.Inc()
}

// IncCacheHit фиксирует попадание в кэш
func (m *Metrics) IncCacheHit(cache string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncCacheMiss фиксирует промах кэша
func (m *Metrics) IncCacheMiss(cache string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(cache).Inc()
}
