package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messbot_chat_queries_total",
			Help: "Total number of chat queries processed, by detected intent",
		},
		[]string{"intent"},
	)

	AlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messbot_alerts_emitted_total",
			Help: "Total number of threshold alerts emitted",
		},
		[]string{"type"},
	)

	ScheduledCheckRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messbot_scheduled_check_runs_total",
			Help: "Total number of scheduled check executions",
		},
		[]string{"job"},
	)

	ScheduledCheckFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messbot_scheduled_check_failures_total",
			Help: "Total number of scheduled check executions that panicked or failed",
		},
		[]string{"job"},
	)
)
