package middleware

import (
	"crypto/rsa"
	"errors"
	"net/http"

	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// RequireOperator validates the session and ensures the role may run
// operator actions. It runs before any handler, so a rejected request
// never reaches a write.
func RequireOperator(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, ok := authenticate(w, r, pub)
			if !ok {
				return
			}

			role, _ := RoleFromContext(ctx)
			if !role.CanOperate() {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, MsgOperatorAccessNeeded, nil,
					errors.New("role "+string(role)+" is not an operator"),
				)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
