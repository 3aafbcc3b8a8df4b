// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planetarium",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planetarium",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planetarium",
		Name:      "reservations_created_total",
		Help:      "Reservations committed.",
	})

	TicketsSold = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planetarium",
		Name:      "tickets_sold_total",
		Help:      "Tickets committed as part of a reservation.",
	})

	SeatConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planetarium",
		Name:      "seat_conflicts_total",
		Help:      "Reservations rejected because a seat was already taken.",
	})

	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planetarium",
		Name:      "catalog_cache_results_total",
		Help:      "Catalog response cache lookups by result.",
	}, []string{"result"})
)
