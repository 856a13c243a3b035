package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Создается один раз в main и передается в middleware, обертку БД и инфраструктуру
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbPoolGauge     *prometheus.GaugeVec

	liveEventsTotal     *prometheus.CounterVec
	liveReconnectsTotal *prometheus.CounterVec
	liveConnectionState *prometheus.GaugeVec

	weekCacheTotal *prometheus.CounterVec
}

// New создает и регистрирует все метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbPoolGauge: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		liveEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "live_channel_events_total",
			Help:        "Total number of events received from the live update channel",
			ConstLabels: constLabels,
		}, []string{"stream"}),

		liveReconnectsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "live_channel_reconnects_total",
			Help:        "Total number of live channel reconnect attempts",
			ConstLabels: constLabels,
		}, []string{"result"}),

		liveConnectionState: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "live_channel_connection_state",
			Help:        "Current live channel connection state (1 for the active state)",
			ConstLabels: constLabels,
		}, []string{"state"}),

		weekCacheTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "week_cache_requests_total",
			Help:        "Week availability cache lookups",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// RecordHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) RecordDBQuery(operation, status string, duration time.Duration) {
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStat выставляет значение метрики состояния пула соединений
func (m *Metrics) SetDBPoolStat(state string, value float64) {
	m.dbPoolGauge.WithLabelValues(state).Set(value)
}

// RecordLiveEvent фиксирует событие, полученное из live-канала
func (m *Metrics) RecordLiveEvent(stream string) {
	m.liveEventsTotal.WithLabelValues(stream).Inc()
}

// RecordLiveReconnect фиксирует попытку переподключения live-канала
func (m *Metrics) RecordLiveReconnect(result string) {
	m.liveReconnectsTotal.WithLabelValues(result).Inc()
}

// SetLiveConnectionState выставляет текущее состояние соединения live-канала
// Для активного состояния значение 1, для остальных 0
func (m *Metrics) SetLiveConnectionState(active string, all []string) {
	for _, s := range all {
		v := 0.0
		if s == active {
			v = 1.0
		}
		m.liveConnectionState.WithLabelValues(s).Set(v)
	}
}

// RecordWeekCache фиксирует обращение к кэшу недельной доступности
// result: "hit", "miss" или "error"
func (m *Metrics) RecordWeekCache(result string) {
	m.weekCacheTotal.WithLabelValues(result).Inc()
}
