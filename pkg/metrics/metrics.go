package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
// Все методы записи безопасны для nil-получателя (метрики выключены)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	ReservationsCreatedTotal   prometheus.Counter
	ReservationConflictsTotal  prometheus.Counter
	ValidationFailuresTotal    *prometheus.CounterVec
	ReservationsCompletedTotal prometheus.Counter
	ReservationsCancelledTotal prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		ReservationsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations committed",
			ConstLabels: labels,
		}),
		ReservationConflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_conflicts_total",
			Help:        "Commits rejected because of an overlapping reservation",
			ConstLabels: labels,
		}),
		ValidationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_validation_failures_total",
			Help:        "Reservation requests rejected by booking rules",
			ConstLabels: labels,
		}, []string{"reason"}),
		ReservationsCompletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_completed_total",
			Help:        "Reservations moved to completed by the sweep",
			ConstLabels: labels,
		}),
		ReservationsCancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_cancelled_total",
			Help:        "Reservations cancelled",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrorsTotal,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ReservationsCreatedTotal,
		m.ReservationConflictsTotal,
		m.ValidationFailuresTotal,
		m.ReservationsCompletedTotal,
		m.ReservationsCancelledTotal,
	)

	return m
}

// IncReservationCreated учитывает успешно созданное бронирование
func (m *Metrics) IncReservationCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreatedTotal.Inc()
}

// IncReservationConflict учитывает отказ из-за пересечения
func (m *Metrics) IncReservationConflict() {
	if m == nil {
		return
	}
	m.ReservationConflictsTotal.Inc()
}

// IncValidationFailure учитывает отказ по правилам бронирования
func (m *Metrics) IncValidationFailure(reason string) {
	if m == nil {
		return
	}
	m.ValidationFailuresTotal.WithLabelValues(reason).Inc()
}

// AddReservationsCompleted учитывает бронирования, завершённые sweep-ом
func (m *Metrics) AddReservationsCompleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.ReservationsCompletedTotal.Add(float64(n))
}

// IncReservationCancelled учитывает отмену бронирования
func (m *Metrics) IncReservationCancelled() {
	if m == nil {
		return
	}
	m.ReservationsCancelledTotal.Inc()
}
