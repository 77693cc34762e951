package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event outcomes reported by the ingestion loop
const (
	OutcomeApplied      = "applied"
	OutcomeDuplicate    = "duplicate"
	OutcomeSkipped      = "skipped"
	OutcomeFailed       = "failed"
	OutcomeUnrecognized = "unrecognized"
	OutcomeStale        = "stale"
)

// Throughput metrics
var (
	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kuronje_indexer_events_total",
			Help: "Total number of contract events handled by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	LogsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kuronje_indexer_logs_received_total",
		Help: "Total number of raw logs delivered by the log source",
	})

	ApplyRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kuronje_indexer_apply_retries_total",
		Help: "Total number of retried apply attempts",
	})

	Rewinds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kuronje_indexer_rewinds_total",
		Help: "Total number of projection rewinds caused by chain reorganisations",
	})

	PublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kuronje_indexer_publish_failures_total",
		Help: "Total number of applied events that could not be published",
	})
)

// Performance metrics
var (
	ApplyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kuronje_indexer_apply_duration_seconds",
		Help:    "Time taken to journal and apply a single event",
		Buckets: prometheus.DefBuckets,
	})
)

// State metrics
var (
	CursorBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kuronje_indexer_cursor_block",
		Help: "Block number of the projection cursor",
	})

	ChainHead = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kuronje_indexer_chain_head",
		Help: "Latest block number reported by the log source",
	})

	BlocksBehind = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kuronje_indexer_blocks_behind",
		Help: "Number of blocks between the chain head and the projection cursor",
	})
)
