package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/shared/go-middleware"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

// JWTService signs RS256 access tokens bound to the caller's IP. The
// matching verification lives in go-middleware.
type JWTService struct {
	privateKey *rsa.PrivateKey
	ttl        time.Duration
	now        func() time.Time
}

func NewJWTService(privateKey *rsa.PrivateKey, ttl time.Duration) *JWTService {
	return &JWTService{privateKey: privateKey, ttl: ttl, now: time.Now}
}

func (j *JWTService) TTL() time.Duration { return j.ttl }

// GenerateAccessToken returns the signed token and its expiry.
func (j *JWTService) GenerateAccessToken(subject string, role models.Role, clientIP string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := middleware.SessionClaims{
		Role: string(role),
		IP:   clientIP,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    middleware.TokenIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(j.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
