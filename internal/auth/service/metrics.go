package service

import (
	"github.com/asafonov/blog-backend/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementRegistrationsRejected(reason string) {
	metrics.RegistrationsRejected.WithLabelValues(reason).Inc()
}

func incrementLogins() {
	metrics.LoginsTotal.Inc()
}

func incrementLoginsFailed() {
	metrics.LoginsFailed.Inc()
}

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}
