package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hotels/internal/domain"
)

var (
	Bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "bookings_total", Help: "Booking attempts by result."},
		[]string{"result"}, // booked|no_free_room
	)
	RoomsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotels", Name: "rooms_added_total", Help: "Rooms added."},
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "store_ops_total", Help: "Snapshot store operations."},
		[]string{"store", "op", "status"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotels", Name: "store_op_duration_seconds",
			Help:    "Snapshot store operation duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "op"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(Bookings, RoomsAdded, StoreOps, StoreLatency)
	return reg
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func WriteTextfile(path string, reg prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, reg)
}

func ObserveBooking(booked bool) {
	if booked {
		Bookings.WithLabelValues("booked").Inc()
		return
	}
	Bookings.WithLabelValues("no_free_room").Inc()
}

func ObserveRoomAdded() { RoomsAdded.Inc() }

func ObserveStore(store, op string, err error, dur time.Duration) {
	StoreOps.WithLabelValues(store, op, LabelErr(err)).Inc()
	StoreLatency.WithLabelValues(store, op).Observe(dur.Seconds())
}

func LabelErr(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return "not_found"
	default:
		return "error"
	}
}
