package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RecoRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_request_latency_seconds",
		Help:    "Latency of recommendation endpoints",
		Buckets: prometheus.DefBuckets,
	})

	RecoRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_requests_total",
		Help: "Total recommendation requests served",
	})
)

func Init() {
	prometheus.MustRegister(RecoRequestLatency, RecoRequestsTotal)
}
