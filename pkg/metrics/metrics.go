package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	TxRetriesTotal      prometheus.Counter
	ReservationsTotal   *prometheus.CounterVec
	NotificationsTotal  *prometheus.CounterVec
	ShiftConflictsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
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

		TxRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: labels,
		}),

		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_total",
			Help:        "Reservation attempts by operation and outcome",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),

		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification deliveries by kind and outcome",
			ConstLabels: labels,
		}, []string{"kind", "outcome"}),

		ShiftConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shift_conflicts_total",
			Help:        "Conflicts found while applying bulk shift settings",
			ConstLabels: labels,
		}, []string{"type"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.TxRetriesTotal,
		m.ReservationsTotal,
		m.NotificationsTotal,
		m.ShiftConflictsTotal,
	)

	return m
}

// ObserveReservation увеличивает счетчик попыток бронирования.
// Безопасно вызывать на nil.
func (m *Metrics) ObserveReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveNotification увеличивает счетчик отправки уведомлений.
// Безопасно вызывать на nil.
func (m *Metrics) ObserveNotification(kind, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveShiftConflict увеличивает счетчик конфликтов смен.
// Безопасно вызывать на nil.
func (m *Metrics) ObserveShiftConflict(conflictType string) {
	if m == nil {
		return
	}
	m.ShiftConflictsTotal.WithLabelValues(conflictType).Inc()
}

// ObserveTxRetry увеличивает счетчик повторов транзакций.
// Безопасно вызывать на nil.
func (m *Metrics) ObserveTxRetry() {
	if m == nil {
		return
	}
	m.TxRetriesTotal.Inc()
}
