package http

import (
	"net/http"

	"github.com/asafonov/blog-backend/internal/common/constants"
	"github.com/asafonov/blog-backend/internal/common/httpmetrics"
	"github.com/asafonov/blog-backend/internal/common/logger"
)

// BuildBaseHandler wraps a handler with the standard middleware chain:
// security headers, panic recovery, trace ids, body size cap, metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
