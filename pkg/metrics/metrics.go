// Package metrics exposes Prometheus counters and histograms for the
// dispatcher and codec. None of this is wire-visible or consulted by
// codec logic — spec §6's "no CLI, no environment variables, no
// persisted state" binds the wire protocol, not ambient observability,
// the same way the teacher instruments its NFS/SMB handlers without the
// protocol itself knowing metrics exist.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesDispatched counts handleMessage outcomes by status code
	// name, letting an operator see error-code distribution without
	// parsing logs.
	MessagesDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csp",
		Subsystem: "server",
		Name:      "messages_dispatched_total",
		Help:      "Messages handled by the dispatcher, labeled by resulting status code.",
	}, []string{"status"})

	// CodecPathSelected counts fast-path vs slow-path selection in the
	// Body Processor (spec §4.E).
	CodecPathSelected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csp",
		Subsystem: "codec",
		Name:      "path_selected_total",
		Help:      "Composite codec fast-path vs slow-path selections.",
	}, []string{"path"})

	// VersionConversions counts version-converter invocations by
	// direction (spec §4.F).
	VersionConversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csp",
		Subsystem: "version",
		Name:      "conversions_total",
		Help:      "Version converter invocations, labeled by direction (to_old, from_old).",
	}, []string{"direction"})

	// DispatchDuration measures handleMessage latency end to end.
	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "csp",
		Subsystem: "server",
		Name:      "dispatch_duration_seconds",
		Help:      "Time spent in one handleMessage call.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObserveCodecPath records which codec path (spec §4.E's "fast" bulk
// memcpy path or the per-field "slow" path) served one struct.
func ObserveCodecPath(fast bool) {
	if fast {
		CodecPathSelected.WithLabelValues("fast").Inc()
		return
	}
	CodecPathSelected.WithLabelValues("slow").Inc()
}
