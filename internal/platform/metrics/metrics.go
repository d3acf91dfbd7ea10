// Package metrics provides Prometheus metrics for the facial auth agent
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label cardinality stays bounded: outcomes and results are closed enums,
// never identities.
var (
	// PollTicksTotal counts capture loop ticks by classified outcome.
	PollTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sembet_poll_ticks_total",
		Help: "Total capture-verify poll ticks, by outcome.",
	}, []string{"outcome"})

	// VerifyLatency observes the verification round trip per tick.
	VerifyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sembet_verify_latency_seconds",
		Help:    "Latency of verification service round trips.",
		Buckets: prometheus.DefBuckets,
	})

	// ResolutionsTotal counts identity resolutions by terminal result.
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sembet_resolutions_total",
		Help: "Total identity resolutions, by result (succeeded/provisioned/failed).",
	}, []string{"result"})

	// CaptureSessionsActive tracks whether a camera session currently holds the device.
	CaptureSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sembet_capture_sessions_active",
		Help: "1 while a capture session holds the camera device, else 0.",
	})

	// CredentialsProvisionedTotal counts newly provisioned facial credentials.
	CredentialsProvisionedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sembet_credentials_provisioned_total",
		Help: "Total facial credentials provisioned on first rejection.",
	})
)
