// Package metrics exposes classification metrics over Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements the classifier's MetricsCollector over a
// dedicated Prometheus registry.
type Collector struct {
	registry               *prometheus.Registry
	classificationsTotal   *prometheus.CounterVec
	ruleTriggersTotal      *prometheus.CounterVec
	counterFailuresTotal   *prometheus.CounterVec
	classificationDuration prometheus.Histogram
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		classificationsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total number of classified transactions by final status",
		}, []string{"status"}),
		ruleTriggersTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "rule_triggers_total",
			Help: "Total number of rule triggers by rule and action",
		}, []string{"rule", "action"}),
		counterFailuresTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "trigger_counter_failures_total",
			Help: "Total number of exhausted trigger counter updates",
		}, []string{"rule"}),
		classificationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "classification_duration_seconds",
			Help:    "Time taken to classify a transaction",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (c *Collector) RecordClassification(status string, duration time.Duration) {
	c.classificationsTotal.WithLabelValues(status).Inc()
	c.classificationDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordRuleTrigger(ruleName, action string) {
	c.ruleTriggersTotal.WithLabelValues(ruleName, action).Inc()
}

func (c *Collector) RecordCounterFailure(ruleName string) {
	c.counterFailuresTotal.WithLabelValues(ruleName).Inc()
}

// Handler serves the registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
