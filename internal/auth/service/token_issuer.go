package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/asafonov/blog-backend/internal/common/clock"
	"github.com/asafonov/blog-backend/internal/common/jwtverify"
)

// TokenIssuer mints the signed identity tokens the rest of the system
// trusts. The secret is loaded once at startup and never changes for the
// process lifetime.
type TokenIssuer struct {
	jwtSecret      []byte
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(jwtSecret string, accessTokenTTL time.Duration, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		clock:          clk,
		accessTokenTTL: accessTokenTTL,
	}
}

// Issue signs claims {sub: subject, exp: now + TTL} with HS256. Validity is
// purely a function of signature and expiration; nothing is persisted.
func (ti *TokenIssuer) Issue(subject string) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ti.accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	incrementAccessTokensIssued()
	return tokenString, nil
}

func (ti *TokenIssuer) Parse(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret, ti.clock)
}
