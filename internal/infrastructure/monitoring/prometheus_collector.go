package monitoring

import (
	"time"

	"coursecast/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector exposes delivery metrics. It registers against the given
// registerer so tests can use an isolated registry.
type Collector struct {
	requestsTotal      *prometheus.CounterVec
	transfersTotal     *prometheus.CounterVec
	bytesStreamedTotal *prometheus.CounterVec
	activeStreams      prometheus.Gauge
	transferDuration   prometheus.Histogram
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecast_media_requests_total",
			Help: "Media requests by asset kind and HTTP status",
		}, []string{"kind", "status"}),

		transfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecast_transfers_total",
			Help: "Finished transfers by terminal state",
		}, []string{"state"}),

		bytesStreamedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecast_bytes_streamed_total",
			Help: "Bytes written to clients by asset kind",
		}, []string{"kind"}),

		activeStreams: factory.NewGauge(prometheus.GaugeOpts{
			Name: "coursecast_active_streams",
			Help: "Transfers currently in flight",
		}),

		transferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursecast_transfer_duration_seconds",
			Help:    "Wall time of finished transfers",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
	}
}

// ObserveRequest counts a finished media request.
func (c *Collector) ObserveRequest(kind domain.AssetKind, status string) {
	c.requestsTotal.WithLabelValues(string(kind), status).Inc()
}

// StreamStarted marks a transfer in flight.
func (c *Collector) StreamStarted() {
	c.activeStreams.Inc()
}

// StreamFinished records a terminal transfer state with its byte count
// and duration.
func (c *Collector) StreamFinished(kind domain.AssetKind, state domain.StreamState, bytes int64, elapsed time.Duration) {
	c.activeStreams.Dec()
	c.transfersTotal.WithLabelValues(string(state)).Inc()
	c.bytesStreamedTotal.WithLabelValues(string(kind)).Add(float64(bytes))
	c.transferDuration.Observe(elapsed.Seconds())
}
