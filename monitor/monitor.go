package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OnlinePlayers         prometheus.Gauge
	WaitingPlayers        prometheus.Gauge
	ActiveSessions        prometheus.Gauge
	SessionsStarted       prometheus.Counter
	SessionsAborted       prometheus.Counter
	QuestionFetchErrors   prometheus.Counter
	QuestionFetchDuration prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of connected players",
		}),
		WaitingPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "waiting_players",
			Help:      "Number of players waiting for a game to start",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of game sessions currently running",
		}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of game sessions started",
		}),
		SessionsAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_aborted_total",
			Help:      "Total number of game sessions aborted on error",
		}),
		QuestionFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_fetch_errors_total",
			Help:      "Total number of failed question API calls",
		}),
		QuestionFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "question_fetch_duration_seconds",
			Help:      "Question API call latency",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}

	prometheus.MustRegister(
		m.OnlinePlayers,
		m.WaitingPlayers,
		m.ActiveSessions,
		m.SessionsStarted,
		m.SessionsAborted,
		m.QuestionFetchErrors,
		m.QuestionFetchDuration,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))
	mux.Handle("/debug/vars", expvar.Handler())

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) IncOnlinePlayers() {
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) SetWaitingPlayers(count int) {
	m.metrics.WaitingPlayers.Set(float64(count))
}

func (m *Monitor) SessionStarted() {
	m.metrics.SessionsStarted.Inc()
	m.metrics.ActiveSessions.Inc()
}

func (m *Monitor) SessionEnded(aborted bool) {
	m.metrics.ActiveSessions.Dec()
	if aborted {
		m.metrics.SessionsAborted.Inc()
	}
}

func (m *Monitor) ObserveQuestionFetch(duration time.Duration, err error) {
	m.metrics.QuestionFetchDuration.Observe(duration.Seconds())
	if err != nil {
		m.metrics.QuestionFetchErrors.Inc()
	}
}
