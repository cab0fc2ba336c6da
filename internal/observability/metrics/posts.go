package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	PostsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_updated_total",
			Help: "Total number of posts updated",
		},
	)

	PostsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_deleted_total",
			Help: "Total number of posts deleted",
		},
	)

	PostOwnershipDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_ownership_denied_total",
			Help: "Total number of post mutations denied by the ownership check",
		},
		[]string{"operation"},
	)
)
