package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор prometheus метрик сервиса.
// Все методы безопасны для nil receiver, чтобы метрики можно было отключить конфигом.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBConnections       *prometheus.GaugeVec
	SlotsGenerated      *prometheus.CounterVec
	CandidateChecks     *prometheus.CounterVec
	BookingsCreated     *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает и регистрирует метрики в указанном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by route and status.",
			},
			[]string{"service", "method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query latency by operation.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_query_errors_total",
				Help:      "Count of failed database queries by operation.",
			},
			[]string{"service", "operation"},
		),
		DBConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections",
				Help:      "Database pool connections by state.",
			},
			[]string{"service", "state"},
		),
		SlotsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slots_generated_total",
				Help:      "Count of generated time slots by availability.",
			},
			[]string{"service", "availability"},
		),
		CandidateChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidate_checks_total",
				Help:      "Count of single-slot validations by outcome.",
			},
			[]string{"service", "outcome"},
		),
		BookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_created_total",
				Help:      "Count of created bookings by origin.",
			},
			[]string{"service", "origin"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.SlotsGenerated,
		m.CandidateChecks,
		m.BookingsCreated,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в label service
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(seconds)
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections обновляет gauge соединений пула
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// ObserveSlots фиксирует результат генерации слотов
func (m *Metrics) ObserveSlots(available, unavailable int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.serviceName, "available").Add(float64(available))
	m.SlotsGenerated.WithLabelValues(m.serviceName, "unavailable").Add(float64(unavailable))
}

// ObserveCandidateCheck фиксирует результат проверки одного слота
func (m *Metrics) ObserveCandidateCheck(outcome string) {
	if m == nil {
		return
	}
	m.CandidateChecks.WithLabelValues(m.serviceName, outcome).Inc()
}

// ObserveBookingCreated фиксирует созданное бронирование
func (m *Metrics) ObserveBookingCreated(origin string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName, origin).Inc()
}
