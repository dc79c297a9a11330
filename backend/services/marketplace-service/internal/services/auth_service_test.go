package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"testing"
	"time"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-middleware"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

const testClientIP = "203.0.113.7"

func newAuthService(t *testing.T, store *testhelpers.MemStore) (*AuthService, *rsa.PublicKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	cfg := &config.Config{OperatorEmail: "Ops@Staynest.dev", OperatorPassword: "operator-secret"}
	return NewAuthService(cfg, store, NewJWTService(key, 15*time.Minute)), &key.PublicKey
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	svc, pub := newAuthService(t, store)

	session, err := svc.Signup(ctx, dtos.SignupRequest{
		Name: "Gail Guest", Email: "Gail@Example.com", Password: "hunter22", Role: "GUEST",
	}, testClientIP)
	require.NoError(t, err)
	require.Equal(t, "gail@example.com", session.User.Email)
	require.Equal(t, models.RoleGuest, session.User.Role)

	claims, err := middleware.ValidateToken(session.AccessToken, testClientIP, pub)
	require.NoError(t, err)
	require.Equal(t, session.User.ID, claims.Subject)
	require.Equal(t, "GUEST", claims.Role)

	user, err := store.Users().GetByEmail(ctx, "gail@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", *user.PasswordHash)

	login, err := svc.Login(ctx, dtos.LoginRequest{Email: "GAIL@example.com", Password: "hunter22"}, testClientIP)
	require.NoError(t, err)
	require.Equal(t, session.User.ID, login.User.ID)

	_, err = middleware.ValidateToken(login.AccessToken, "198.51.100.1", pub)
	require.Error(t, err)
}

func TestSignupRejectsTakenEmailsAndRoles(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	svc, _ := newAuthService(t, store)

	req := dtos.SignupRequest{Name: "Owen", Email: "owen@example.com", Password: "secret1", Role: "OWNER"}
	_, err := svc.Signup(ctx, req, testClientIP)
	require.NoError(t, err)

	req.Email = "OWEN@example.com"
	_, err = svc.Signup(ctx, req, testClientIP)
	requireAppError(t, err, http.StatusConflict, internal_utils.ErrCodeEmailTaken)

	req.Email = "ops@staynest.dev"
	_, err = svc.Signup(ctx, req, testClientIP)
	requireAppError(t, err, http.StatusConflict, internal_utils.ErrCodeEmailTaken)

	req.Email = "root@example.com"
	req.Role = "OPERATOR"
	_, err = svc.Signup(ctx, req, testClientIP)
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
}

func TestOperatorLogin(t *testing.T) {
	ctx := context.Background()
	svc, pub := newAuthService(t, testhelpers.NewMemStore())

	session, err := svc.Login(ctx, dtos.LoginRequest{Email: "ops@staynest.dev", Password: "operator-secret"}, testClientIP)
	require.NoError(t, err)
	require.Equal(t, models.RoleOperator, session.User.Role)
	require.Equal(t, OperatorSubjectPrefix+"ops@staynest.dev", session.User.ID)

	claims, err := middleware.ValidateToken(session.AccessToken, testClientIP, pub)
	require.NoError(t, err)
	require.Equal(t, "OPERATOR", claims.Role)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	svc, _ := newAuthService(t, store)
	_, err := svc.Signup(ctx, dtos.SignupRequest{
		Name: "Fay", Email: "fay@example.com", Password: "correct1", Role: "FREELANCER",
	}, testClientIP)
	require.NoError(t, err)

	for _, req := range []dtos.LoginRequest{
		{Email: "fay@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "correct1"},
		{Email: "ops@staynest.dev", Password: "wrong"},
	} {
		_, err := svc.Login(ctx, req, testClientIP)
		appErr := requireAppError(t, err, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials)
		require.Equal(t, "Invalid email or password", appErr.Message)
	}
}
