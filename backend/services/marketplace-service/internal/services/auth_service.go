package services

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	shared_dtos "github.com/staynest/mono-repo/backend/shared/go-dtos"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// OperatorSubjectPrefix marks tokens issued to the configured operator,
// who has no row in users.
const OperatorSubjectPrefix = "operator:"

type AuthService struct {
	store            repositories.Store
	jwt              *JWTService
	operatorEmail    string
	operatorPassword string
}

func NewAuthService(cfg *config.Config, store repositories.Store, jwtSvc *JWTService) *AuthService {
	return &AuthService{
		store:            store,
		jwt:              jwtSvc,
		operatorEmail:    utils.NormalizeEmail(cfg.OperatorEmail),
		operatorPassword: cfg.OperatorPassword,
	}
}

// Signup creates a self-service account and signs it in.
func (s *AuthService) Signup(ctx context.Context, req dtos.SignupRequest, clientIP string) (*dtos.SessionResponse, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok || !role.SelfServiceSignup() {
		return nil, utils.Validation("Role must be one of OWNER, FREELANCER or GUEST", nil)
	}
	email := utils.NormalizeEmail(req.Email)
	if email == s.operatorEmail {
		return nil, emailTaken(nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.Internal("Failed to create account", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         utils.NilIfBlank(strings.TrimSpace(req.Name)),
		PasswordHash: &hash,
		Role:         role,
	}
	existing, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, storageFailure("Failed to create account", err)
	}
	if existing != nil {
		return nil, emailTaken(utils.ErrEmailExists)
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if c, ok := repositories.IsUniqueViolation(err); ok && c == repositories.ConstraintUsersEmail {
			return nil, emailTaken(err)
		}
		return nil, storageFailure("Failed to create account", err)
	}

	utils.Logger.WithField("userID", user.ID).Infof("Account created with role %s", user.Role)
	return s.session(shared_dtos.NewUserFromModel(*user), clientIP)
}

// Login accepts the configured operator credentials or any account with a
// password. Both failures look the same to the caller.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest, clientIP string) (*dtos.SessionResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	if s.isOperator(email, req.Password) {
		utils.Logger.Info("Operator signed in")
		return s.session(shared_dtos.User{
			ID:    OperatorSubjectPrefix + email,
			Email: email,
			Role:  models.RoleOperator,
		}, clientIP)
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, storageFailure("Failed to sign in", err)
	}
	if user == nil || !utils.PasswordMatches(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}
	return s.session(shared_dtos.NewUserFromModel(*user), clientIP)
}

func (s *AuthService) isOperator(email, password string) bool {
	if s.operatorEmail == "" || s.operatorPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.operatorEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.operatorPassword)) == 1
	return emailOK && passOK
}

func (s *AuthService) session(user shared_dtos.User, clientIP string) (*dtos.SessionResponse, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Role, clientIP)
	if err != nil {
		return nil, utils.Internal("Failed to create session", err)
	}
	return &dtos.SessionResponse{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func emailTaken(err error) error {
	return utils.Conflict(internal_utils.ErrCodeEmailTaken, constants.MsgEmailTaken, err)
}

func invalidCredentials() error {
	return &utils.AppError{
		StatusCode: http.StatusUnauthorized,
		Code:       utils.ErrCodeInvalidCredentials,
		Message:    constants.MsgInvalidCredentials,
	}
}
