package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoteldesk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hoteldesk_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoteldesk_logins_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	profileUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoteldesk_profile_updates_total",
		Help: "Count of transactional profile updates by result",
	}, []string{"result"})

	recordMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoteldesk_record_mutations_total",
		Help: "Count of record mutations by entity, action and result",
	}, []string{"entity", "action", "result"})

	listRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoteldesk_list_requests_total",
		Help: "Count of paginated list computations by entity",
	}, []string{"entity"})

	autoCheckouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hoteldesk_auto_checkouts_total",
		Help: "Count of bookings closed by the checkout sweep worker",
	})

	eventClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hoteldesk_event_stream_clients",
		Help: "Number of connected desk event stream clients",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin increments the login counter with a success/failure result.
func ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveProfileUpdate increments the profile update counter with a result label.
func ObserveProfileUpdate(result string) {
	profileUpdates.WithLabelValues(result).Inc()
}

// ObserveMutation records an add/update/delete on a mutable view.
func ObserveMutation(entity, action, result string) {
	recordMutations.WithLabelValues(entity, action, result).Inc()
}

// ObserveListRequest counts one paginated list computation.
func ObserveListRequest(entity string) {
	listRequests.WithLabelValues(entity).Inc()
}

// ObserveAutoCheckouts adds the number of bookings closed by one sweep.
func ObserveAutoCheckouts(count int) {
	if count > 0 {
		autoCheckouts.Add(float64(count))
	}
}

// EventClientConnected increments the event stream client gauge.
func EventClientConnected() {
	eventClients.Inc()
}

// EventClientDisconnected decrements the event stream client gauge.
func EventClientDisconnected() {
	eventClients.Dec()
}
