package controllers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// AdminController exposes operator project administration. Every route is
// mounted behind middleware.RequireOperator, so the acting subject is
// always present in the request context.
type AdminController struct {
	projectService *services.ProjectService
	listingService *services.ListingService
	validate       *validator.Validate
}

func NewAdminController(projectService *services.ProjectService, listingService *services.ListingService) *AdminController {
	return &AdminController{
		projectService: projectService,
		listingService: listingService,
		validate:       newValidator(),
	}
}

// ListProjectsHandler => GET /api/v1/admin/projects?status=
func (c *AdminController) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := c.projectService.ListProjects(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GetProjectHandler => GET /api/v1/admin/projects/{id}
func (c *AdminController) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	detail, err := c.projectService.GetProject(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// ApproveHandler => POST /api/v1/admin/projects/{id}/approve
func (c *AdminController) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.projectService.Approve)
}

// RejectHandler => POST /api/v1/admin/projects/{id}/reject
func (c *AdminController) RejectHandler(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.projectService.Reject)
}

type projectTransition func(ctx context.Context, actorID string, projectID uuid.UUID) (*models.Project, error)

func (c *AdminController) transition(w http.ResponseWriter, r *http.Request, apply projectTransition) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	project, err := apply(r.Context(), actorID(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// AssignHandler => POST /api/v1/admin/projects/{id}/assign
func (c *AdminController) AssignHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.AssignRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	assignment, err := c.projectService.Assign(r.Context(), actorID(r), id, uuid.MustParse(req.ApplicationID))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assignment)
}

// PublishHandler => POST /api/v1/admin/projects/{id}/publish
func (c *AdminController) PublishHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	listing, err := c.projectService.Publish(r.Context(), actorID(r), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listing)
}

// SetStatusHandler => PATCH /api/v1/admin/projects/{id}/status
func (c *AdminController) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.SetStatusRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	project, err := c.projectService.SetStatus(r.Context(), actorID(r), id, req.Status)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// UpdateNotesHandler => PATCH /api/v1/admin/projects/{id}/notes
func (c *AdminController) UpdateNotesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateNotesRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	project, err := c.projectService.UpdateNotes(r.Context(), actorID(r), id, req.Notes)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// SaveListingHandler => PUT /api/v1/admin/projects/{id}/listing (multipart/form-data)
func (c *AdminController) SaveListingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if !parseMultipart(w, r) {
		return
	}
	req := dtos.SaveListingRequest{
		Title:       formString(r, "listingTitle"),
		Slug:        formString(r, "slug"),
		Description: utils.NilIfBlank(formString(r, "listingDescription")),
		NightlyRate: formInt(r, "nightlyRate"),
		CleaningFee: formInt(r, "cleaningFee"),
		MaxGuests:   formInt(r, "maxGuests"),
	}
	if !validateRequest(w, c.validate, req) {
		return
	}
	photos, err := readUploads(r.MultipartForm, constants.GuestPhotoField)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Could not read uploaded photos", nil, err)
		return
	}

	listing, err := c.listingService.SaveListing(r.Context(), actorID(r), id, req, photos)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listing)
}

// UpdatePropertyHandler => PATCH /api/v1/admin/properties/{id}
func (c *AdminController) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdatePropertyRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	property, err := c.projectService.UpdateProperty(r.Context(), actorID(r), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, property)
}
