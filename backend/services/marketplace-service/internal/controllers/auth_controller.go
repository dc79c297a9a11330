package controllers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type AuthController struct {
	authService  *services.AuthService
	sessionTTL   time.Duration
	highSecurity bool
	validate     *validator.Validate
}

func NewAuthController(authService *services.AuthService, sessionTTL time.Duration, highSecurity bool) *AuthController {
	return &AuthController{
		authService:  authService,
		sessionTTL:   sessionTTL,
		highSecurity: highSecurity,
		validate:     newValidator(),
	}
}

// SignupHandler => POST /api/v1/auth/signup
func (c *AuthController) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignupRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	session, err := c.authService.Signup(r.Context(), req, utils.ClientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	internal_utils.SetAccessCookie(w, session.AccessToken, c.sessionTTL, c.highSecurity)
	utils.RespondWithJSON(w, http.StatusCreated, session)
}

// LoginHandler => POST /api/v1/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	session, err := c.authService.Login(r.Context(), req, utils.ClientIP(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	internal_utils.SetAccessCookie(w, session.AccessToken, c.sessionTTL, c.highSecurity)
	utils.RespondWithJSON(w, http.StatusOK, session)
}

// LogoutHandler => POST /api/v1/auth/logout
func (c *AuthController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	internal_utils.ClearAccessCookie(w, c.highSecurity)
	utils.RespondWithJSON(w, http.StatusOK, dtos.LogoutResponse{Success: true})
}
