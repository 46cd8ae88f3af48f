package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newTestSink(t *testing.T) (*PrometheusSink, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink := NewPrometheusSink(reg)
	return sink, reg
}

func gatherValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !matchLabels(m.GetLabel(), labels) {
				continue
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			if m.GetGauge() != nil {
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) != len(want) {
		return false
	}
	for _, lp := range got {
		if want[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

func TestPrometheusSink_SupervisorMetrics(t *testing.T) {
	sink, reg := newTestSink(t)

	sink.ReminderScheduled()
	sink.ReminderScheduled()
	sink.MonitorOutcome(OutcomeFired)
	sink.MonitorOutcome(OutcomeCancelled)
	sink.MonitorOutcome(OutcomeCancelled)

	if v := gatherValue(t, reg, "reminderd_reminders_scheduled_total", nil); v != 2 {
		t.Errorf("reminders_scheduled_total = %v, want 2", v)
	}
	if v := gatherValue(t, reg, "reminderd_monitor_outcomes_total", map[string]string{"outcome": OutcomeFired}); v != 1 {
		t.Errorf("monitor_outcomes_total{fired} = %v, want 1", v)
	}
	if v := gatherValue(t, reg, "reminderd_monitor_outcomes_total", map[string]string{"outcome": OutcomeCancelled}); v != 2 {
		t.Errorf("monitor_outcomes_total{cancelled} = %v, want 2", v)
	}
}

func TestPrometheusSink_QueueMetrics(t *testing.T) {
	sink, reg := newTestSink(t)

	sink.NotificationEnqueued()
	sink.QueueDepthUpdate(3)

	if v := gatherValue(t, reg, "reminderd_notifications_enqueued_total", nil); v != 1 {
		t.Errorf("notifications_enqueued_total = %v, want 1", v)
	}
	if v := gatherValue(t, reg, "reminderd_queue_depth", nil); v != 3 {
		t.Errorf("queue_depth = %v, want 3", v)
	}
}

func TestPrometheusSink_DispatcherAndPersistMetrics(t *testing.T) {
	sink, reg := newTestSink(t)

	sink.NotificationDispatched(50 * time.Millisecond)
	sink.SaveCompleted(nil)
	sink.SaveCompleted(errors.New("disk full"))

	if v := gatherValue(t, reg, "reminderd_notifications_dispatched_total", nil); v != 1 {
		t.Errorf("notifications_dispatched_total = %v, want 1", v)
	}
	if v := gatherValue(t, reg, "reminderd_persist_saves_total", map[string]string{"result": "ok"}); v != 1 {
		t.Errorf("persist_saves_total{ok} = %v, want 1", v)
	}
	if v := gatherValue(t, reg, "reminderd_persist_saves_total", map[string]string{"result": "error"}); v != 1 {
		t.Errorf("persist_saves_total{error} = %v, want 1", v)
	}
}

func TestPrometheusSink_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	// Second sink on the same registry logs registration failures but must
	// still be usable.
	NewPrometheusSink(reg)
	sink := NewPrometheusSink(reg)

	sink.ReminderScheduled()
	sink.QueueDepthUpdate(1)
}
