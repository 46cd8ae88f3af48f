package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink implements Sink using the Prometheus client library.
// All methods are non-blocking and fire-and-forget.
// Registration errors are logged but never propagated.
type PrometheusSink struct {
	// Supervisor metrics
	remindersScheduledTotal prometheus.Counter
	monitorOutcomesTotal    *prometheus.CounterVec

	// Queue metrics
	queueDepth         prometheus.Gauge
	notificationsTotal prometheus.Counter

	// Dispatcher metrics
	dispatchedTotal prometheus.Counter
	dispatchLatency prometheus.Histogram

	// Persistence metrics
	savesTotal *prometheus.CounterVec
}

// NewPrometheusSink creates a new Prometheus metrics sink.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{
		remindersScheduledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminderd_reminders_scheduled_total",
			Help: "Total number of reminder monitors started.",
		}),
		monitorOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminderd_monitor_outcomes_total",
			Help: "Terminal monitor outcomes by kind.",
		}, []string{"outcome"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reminderd_queue_depth",
			Help: "Current number of events buffered in the notification queue.",
		}),
		notificationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminderd_notifications_enqueued_total",
			Help: "Total number of notification events enqueued by monitors.",
		}),
		dispatchedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminderd_notifications_dispatched_total",
			Help: "Total number of notifications delivered by the dispatcher.",
		}),
		dispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminderd_dispatch_latency_seconds",
			Help:    "Time from monitor firing to dispatcher delivery in seconds.",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}),
		savesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminderd_persist_saves_total",
			Help: "Total number of reminder file saves by result.",
		}, []string{"result"}),
	}

	s.register(reg, s.remindersScheduledTotal, "reminderd_reminders_scheduled_total")
	s.register(reg, s.monitorOutcomesTotal, "reminderd_monitor_outcomes_total")
	s.register(reg, s.queueDepth, "reminderd_queue_depth")
	s.register(reg, s.notificationsTotal, "reminderd_notifications_enqueued_total")
	s.register(reg, s.dispatchedTotal, "reminderd_notifications_dispatched_total")
	s.register(reg, s.dispatchLatency, "reminderd_dispatch_latency_seconds")
	s.register(reg, s.savesTotal, "reminderd_persist_saves_total")

	return s
}

// register attempts to register a collector, logging any errors without
// propagating them.
func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		log.Printf("metrics: failed to register %s: %v", name, err)
	}
}

func (s *PrometheusSink) ReminderScheduled() {
	s.remindersScheduledTotal.Inc()
}

func (s *PrometheusSink) MonitorOutcome(outcome string) {
	s.monitorOutcomesTotal.WithLabelValues(outcome).Inc()
}

func (s *PrometheusSink) QueueDepthUpdate(depth int) {
	s.queueDepth.Set(float64(depth))
}

func (s *PrometheusSink) NotificationEnqueued() {
	s.notificationsTotal.Inc()
}

func (s *PrometheusSink) NotificationDispatched(latency time.Duration) {
	s.dispatchedTotal.Inc()
	s.dispatchLatency.Observe(latency.Seconds())
}

func (s *PrometheusSink) SaveCompleted(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.savesTotal.WithLabelValues(result).Inc()
}
