package app

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/controllers"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/routes"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-middleware"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// NewHandler wires services and controllers over the given storage and
// returns the service's root HTTP handler.
func NewHandler(cfg *config.Config, store repositories.Store, db controllers.Pinger, photos services.PhotoStore) http.Handler {
	var gateway services.PaymentGateway
	if cfg.StripeEnabled() {
		gateway = services.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		utils.Logger.Warn("Stripe is not configured; bookings redirect straight to the success page")
	}

	jwtService := services.NewJWTService(cfg.RSAPrivateKey, cfg.SessionTTL)
	authService := services.NewAuthService(cfg, store, jwtService)
	intakeService := services.NewIntakeService(cfg, store, photos)
	projectService := services.NewProjectService(store)
	listingService := services.NewListingService(store, photos)
	freelancerService := services.NewFreelancerService(store)
	bookingService := services.NewBookingService(store, gateway, cfg.AppUrl)
	notificationService := services.NewNotificationService(cfg, store)
	webhookService := services.NewPaymentWebhookService(store, notificationService)

	healthController := controllers.NewHealthController(db)
	authController := controllers.NewAuthController(authService, jwtService.TTL(), cfg.LDFlag_CORSHighSecurity)
	intakeController := controllers.NewIntakeController(intakeService)
	freelancerController := controllers.NewFreelancerController(freelancerService)
	staysController := controllers.NewStaysController(listingService)
	bookingController := controllers.NewBookingController(bookingService)
	webhookController := controllers.NewStripeWebhookController(cfg.StripeWebhookSecret, webhookService)
	photoController := controllers.NewPhotoController(photos)
	adminController := controllers.NewAdminController(projectService, listingService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthSignup, authController.SignupHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogout, authController.LogoutHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.OwnerSubmit, intakeController.SubmitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.FreelancerProjects, freelancerController.ListOpenProjectsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.FreelancerApply, freelancerController.ApplyHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Stays, staysController.ListStaysHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.StayBySlug, staysController.GetStayHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Bookings, bookingController.CreateBookingHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BookingByID, bookingController.GetBookingHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.StripeWebhook, webhookController.WebhookHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Photo, photoController.GetPhotoHandler).Methods(http.MethodGet)

	// Operator
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.RequireOperator(cfg.RSAPublicKey))
	admin.HandleFunc(routes.AdminProjects, adminController.ListProjectsHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminProject, adminController.GetProjectHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminProjectApprove, adminController.ApproveHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProjectReject, adminController.RejectHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProjectAssign, adminController.AssignHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProjectPublish, adminController.PublishHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProjectStatus, adminController.SetStatusHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminProjectNotes, adminController.UpdateNotesHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminProjectListing, adminController.SaveListingHandler).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminProperty, adminController.UpdatePropertyHandler).Methods(http.MethodPatch)

	return withCORS(cfg, router)
}

// withCORS applies the app-wide credentialed policy everywhere except the
// stays API, which any origin may read.
func withCORS(cfg *config.Config, next http.Handler) http.Handler {
	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}
	appCORS := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(next)

	publicCORS := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == routes.Stays || strings.HasPrefix(r.URL.Path, routes.Stays+"/") {
			publicCORS.ServeHTTP(w, r)
			return
		}
		appCORS.ServeHTTP(w, r)
	})
}
