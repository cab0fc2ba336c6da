package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/asafonov/blog-backend/internal/common/clock"
	commonhttp "github.com/asafonov/blog-backend/internal/common/http"
	"github.com/asafonov/blog-backend/internal/common/logger"
	"github.com/asafonov/blog-backend/internal/observability/metrics"
)

// Claims is the verified caller identity extracted from a bearer token.
// It is carried per request and never stored.
type Claims struct {
	UserID string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

const bearerPrefix = "Bearer "

// Middleware gates protected handlers: it turns the Authorization header
// into a verified caller identity or rejects the request with 401. Expired,
// malformed and badly signed tokens are deliberately indistinguishable to
// the caller.
func Middleware(secret string, clk clock.Clock, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
				log.Warnf("jwt auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}

			tokenString := strings.TrimPrefix(raw, bearerPrefix)
			claims, err := parseToken(tokenString, secretBytes, clk)
			if err != nil {
				log.Warnf("jwt auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

func ParseToken(tokenString string, secret []byte, clk clock.Clock) (Claims, error) {
	return parseToken(tokenString, secret, clk)
}

func parseToken(tokenString string, secret []byte, clk clock.Clock) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(clk.Now),
	)

	parsed, err := parser.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		metrics.JWTValidationsFailed.Inc()
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, errors.New("missing sub claim")
	}

	return Claims{UserID: sub}, nil
}
