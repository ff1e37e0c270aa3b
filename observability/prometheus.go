package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DurationKey is the Data key whose time.Duration value PrometheusObserver
// records in its latency histogram.
const DurationKey = "duration"

// PrometheusObserver counts events by type and severity and records the
// DurationKey value of events that carry one.
type PrometheusObserver struct {
	Events   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewPrometheusObserver creates the observer and registers its collectors with
// reg. A nil reg selects prometheus.DefaultRegisterer.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusObserver{
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sovereign",
			Name:      "events_total",
			Help:      "Total events emitted by agent subsystems by type and severity",
		}, []string{"type", "level"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sovereign",
			Name:      "event_duration_seconds",
			Help:      "Duration carried by timed events such as notifications",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"type"}),
	}
}

func (o *PrometheusObserver) OnEvent(_ context.Context, event Event) {
	if o == nil {
		return
	}

	o.Events.WithLabelValues(string(event.Type), event.Level.String()).Inc()

	if d, ok := event.Data[DurationKey].(time.Duration); ok {
		o.Duration.WithLabelValues(string(event.Type)).Observe(d.Seconds())
	}
}
