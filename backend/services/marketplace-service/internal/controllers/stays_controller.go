package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// StaysController serves the public, cross-origin stays API.
type StaysController struct {
	listingService *services.ListingService
}

func NewStaysController(listingService *services.ListingService) *StaysController {
	return &StaysController{listingService: listingService}
}

// ListStaysHandler => GET /api/v1/stays
func (c *StaysController) ListStaysHandler(w http.ResponseWriter, r *http.Request) {
	stays, err := c.listingService.ListPublishedStays(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stays)
}

// GetStayHandler => GET /api/v1/stays/{slug}
func (c *StaysController) GetStayHandler(w http.ResponseWriter, r *http.Request) {
	stay, err := c.listingService.GetStayBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stay)
}
