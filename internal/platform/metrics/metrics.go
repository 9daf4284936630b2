package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ValuesSaved        *prometheus.CounterVec
	ValuesDeleted      *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	FormRenderSeconds  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewForTesting creates metrics on a private registry so parallel tests do
// not collide on the default registerer.
func NewForTesting() *Metrics {
	return newWith(promauto.With(prometheus.NewRegistry()))
}

func newWith(factory promauto.Factory) *Metrics {
	return &Metrics{
		ValuesSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldhub_values_saved_total",
			Help: "Total number of field values written",
		}, []string{"group"}),
		ValuesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldhub_values_deleted_total",
			Help: "Total number of field values deleted",
		}, []string{"group"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldhub_validation_failures_total",
			Help: "Total number of failed validation runs",
		}, []string{"group"}),
		FormRenderSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldhub_form_render_seconds",
			Help:    "Time spent rendering a group's form",
			Buckets: prometheus.DefBuckets,
		}, []string{"group"}),
	}
}
