package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type IntakeController struct {
	intakeService *services.IntakeService
	validate      *validator.Validate
}

func NewIntakeController(intakeService *services.IntakeService) *IntakeController {
	return &IntakeController{intakeService: intakeService, validate: newValidator()}
}

// SubmitHandler => POST /api/v1/owner/submit (multipart/form-data)
func (c *IntakeController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}
	req := dtos.OwnerSubmitRequest{
		OwnerName:       formString(r, "ownerName"),
		OwnerEmail:      formString(r, "ownerEmail"),
		Title:           formString(r, "title"),
		Description:     formString(r, "description"),
		Address:         formString(r, "address"),
		BaseNightlyRate: formInt(r, "baseNightlyRate"),
		MaxGuests:       formInt(r, "maxGuests"),
		Consent:         formBool(r, "consent"),
	}
	if !validateRequest(w, c.validate, req) {
		return
	}

	photos, err := readUploads(r.MultipartForm, constants.OwnerPhotoField)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Could not read uploaded photos", nil, err)
		return
	}

	resp, err := c.intakeService.Submit(r.Context(), req, photos)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
