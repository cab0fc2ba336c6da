package service

import (
	"github.com/asafonov/blog-backend/internal/observability/metrics"
)

func incrementPostsCreated() {
	metrics.PostsCreated.Inc()
}

func incrementPostsUpdated() {
	metrics.PostsUpdated.Inc()
}

func incrementPostsDeleted() {
	metrics.PostsDeleted.Inc()
}

func incrementOwnershipDenied(operation string) {
	metrics.PostOwnershipDenied.WithLabelValues(operation).Inc()
}
