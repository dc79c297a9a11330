package middleware

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer identifies the service that issues all access tokens.
const TokenIssuer = "Staynest"

var (
	ErrMissingSubject = errors.New("missing subject claim")
	ErrMissingIP      = errors.New("missing IP claim in token")
	ErrIPMismatch     = errors.New("IP address mismatch")
)

// SessionClaims is the payload of a Staynest access token. Role is a
// models.Role value and IP the address the session was issued to.
type SessionClaims struct {
	Role string `json:"role"`
	IP   string `json:"ip"`
	jwt.RegisteredClaims
}

// ValidateToken verifies an RS256 token from TokenIssuer, requires an
// unexpired exp, then checks the IP binding. Expiry surfaces as an error
// matching jwt.ErrTokenExpired.
func ValidateToken(tokenString, clientIP string, publicKey *rsa.PublicKey) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	switch {
	case claims.Subject == "":
		return nil, ErrMissingSubject
	case claims.IP == "":
		return nil, ErrMissingIP
	case claims.IP != clientIP:
		return nil, ErrIPMismatch
	}
	return claims, nil
}
