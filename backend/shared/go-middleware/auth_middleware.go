package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type contextKey string

const (
	ContextKeyUserID = contextKey("userID")
	ContextKeyRole   = contextKey("role")

	// Cookie names follow the __Host- prefix rule (no Domain attribute allowed)
	AccessTokenCookieName = "__Host-accessToken"

	MsgSignInRequired       = "Unauthorized: sign in required"
	MsgOperatorAccessNeeded = "Forbidden: operator access required"
)

// AuthMiddleware – for endpoints that need any signed-in user. A missing or
// invalid token returns 401. The JWT is read from the access cookie, or
// from Authorization: Bearer when no cookie is present.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, ok := authenticate(w, r, pub)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate validates the session and returns a context carrying the
// subject and role. On failure it has already written the 401.
func authenticate(w http.ResponseWriter, r *http.Request, pub *rsa.PublicKey) (context.Context, bool) {
	tokenStr, err := extractAccessToken(r)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, MsgSignInRequired, nil, err,
		)
		return nil, false
	}

	claims, vErr := ValidateToken(tokenStr, utils.ClientIP(r), pub)
	if vErr != nil {
		code := utils.ErrCodeUnauthorized
		if errors.Is(vErr, jwt.ErrTokenExpired) {
			code = utils.ErrCodeTokenExpired
		}
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, code, MsgSignInRequired, nil, vErr)
		return nil, false
	}

	// Unknown role values are treated as unauthenticated.
	role, ok := models.ParseRole(claims.Role)
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, MsgSignInRequired, nil,
			errors.New("unknown role claim"),
		)
		return nil, false
	}

	ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.Subject)
	ctx = context.WithValue(ctx, ContextKeyRole, role)
	return ctx, true
}

// UserIDFromContext returns the authenticated subject, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(string)
	return v, ok
}

// RoleFromContext returns the authenticated role, if any.
func RoleFromContext(ctx context.Context) (models.Role, bool) {
	v, ok := ctx.Value(ContextKeyRole).(models.Role)
	return v, ok
}

func extractAccessToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing access token")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
