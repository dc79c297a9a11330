package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type FreelancerController struct {
	freelancerService *services.FreelancerService
	validate          *validator.Validate
}

func NewFreelancerController(freelancerService *services.FreelancerService) *FreelancerController {
	return &FreelancerController{freelancerService: freelancerService, validate: newValidator()}
}

// ListOpenProjectsHandler => GET /api/v1/freelancer/projects
func (c *FreelancerController) ListOpenProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := c.freelancerService.ListOpenProjects(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// ApplyHandler => POST /api/v1/freelancer/projects/{id}/apply
func (c *FreelancerController) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.ApplyRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	app, err := c.freelancerService.Apply(r.Context(), projectID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.ApplyResponse{Success: true, ApplicationID: app.ID.String()})
}
