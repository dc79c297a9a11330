package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/services"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

type BookingController struct {
	bookingService *services.BookingService
	validate       *validator.Validate
}

func NewBookingController(bookingService *services.BookingService) *BookingController {
	return &BookingController{bookingService: bookingService, validate: newValidator()}
}

// CreateBookingHandler => POST /api/v1/bookings
// Responds with the checkout URL the guest should be sent to.
func (c *BookingController) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBookingRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, c.validate, req) {
		return
	}
	resp, err := c.bookingService.CreateBooking(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GetBookingHandler => GET /api/v1/bookings/{id}
func (c *BookingController) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	booking, err := c.bookingService.GetBooking(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}
