package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// BookingService prices a stay and starts checkout. With a nil gateway
// bookings skip payment and go straight to the success page.
type BookingService struct {
	store   repositories.Store
	gateway PaymentGateway
	appURL  string
}

func NewBookingService(store repositories.Store, gateway PaymentGateway, appURL string) *BookingService {
	return &BookingService{store: store, gateway: gateway, appURL: strings.TrimRight(appURL, "/")}
}

// CreateBooking stores a PENDING_PAYMENT booking priced from the listing
// as it is now. The total is never recomputed afterwards.
func (s *BookingService) CreateBooking(ctx context.Context, req dtos.CreateBookingRequest) (*dtos.CreateBookingResponse, error) {
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, utils.Validation("Invalid listing id", nil)
	}
	checkIn, err := internal_utils.ParseStayDate(req.CheckIn)
	if err != nil {
		return nil, utils.Validation("Invalid check-in date", nil)
	}
	checkOut, err := internal_utils.ParseStayDate(req.CheckOut)
	if err != nil {
		return nil, utils.Validation("Invalid check-out date", nil)
	}
	nights, err := internal_utils.Nights(checkIn, checkOut)
	if err != nil {
		return nil, utils.Validation(constants.MsgCheckoutOrder, nil)
	}

	listing, err := s.store.Listings().GetByID(ctx, listingID)
	if err != nil {
		return nil, storageFailure(constants.MsgCheckoutFailed, err)
	}
	if listing == nil {
		return nil, utils.NotFound(constants.MsgNotFound, nil)
	}
	if !listing.IsPublished() {
		return nil, utils.Conflict(internal_utils.ErrCodeListingNotBookable, constants.MsgListingNotBookable, internal_utils.ErrListingNotBookable)
	}
	if req.Guests < 1 || req.Guests > listing.MaxGuests {
		return nil, utils.Validation(constants.MsgTooManyGuests, map[string]int{"max_guests": listing.MaxGuests})
	}

	booking := &models.Booking{
		ID:          uuid.New(),
		ListingID:   listing.ID,
		GuestEmail:  utils.NormalizeEmail(req.GuestEmail),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      req.Guests,
		TotalAmount: internal_utils.TotalMinorUnits(nights, listing.NightlyRate, listing.CleaningFee),
		Currency:    constants.Currency,
		Status:      models.BookingStatusPendingPayment,
	}
	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		return nil, storageFailure(constants.MsgCheckoutFailed, err)
	}

	resp := &dtos.CreateBookingResponse{
		BookingID:   booking.ID.String(),
		TotalAmount: booking.TotalAmount,
		Currency:    booking.Currency,
		RedirectURL: s.pageURL(constants.BookingSuccessPath, booking.ID),
	}
	if s.gateway == nil {
		utils.Logger.WithField("bookingID", booking.ID).Info("Payments disabled; booking left pending")
		return resp, nil
	}

	url, sessionID, err := s.gateway.CreateCheckoutSession(ctx, CheckoutRequest{
		BookingID:     booking.ID,
		Title:         listing.Title,
		Nights:        nights,
		AmountMinor:   booking.TotalAmount,
		Currency:      booking.Currency,
		CustomerEmail: booking.GuestEmail,
		SuccessURL:    resp.RedirectURL,
		CancelURL:     s.pageURL(constants.BookingCancelPath, booking.ID),
	})
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    constants.MsgCheckoutFailed,
			Err:        err,
		}
	}
	utils.Logger.WithFields(logrus.Fields{
		"bookingID": booking.ID,
		"sessionID": sessionID,
		"total":     booking.TotalAmount,
	}).Info("Checkout session created")

	resp.RedirectURL = url
	return resp, nil
}

func (s *BookingService) pageURL(path string, bookingID uuid.UUID) string {
	return s.appURL + path + "?bookingId=" + bookingID.String()
}

// GetBooking is the read-back for the booking success page.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*dtos.BookingDetail, error) {
	b, err := s.store.Bookings().GetByID(ctx, id)
	if err != nil {
		return nil, storageFailure("Failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NotFound("Booking not found", nil)
	}
	detail := &dtos.BookingDetail{
		ID:          b.ID.String(),
		Status:      b.Status,
		GuestEmail:  b.GuestEmail,
		CheckIn:     b.CheckIn.UTC().Format(constants.DateLayout),
		CheckOut:    b.CheckOut.UTC().Format(constants.DateLayout),
		Guests:      b.Guests,
		TotalAmount: b.TotalAmount,
		Currency:    b.Currency,
		CreatedAt:   b.CreatedAt,
		Listing:     dtos.BookingListing{ID: b.ListingID.String()},
	}

	listing, err := s.store.Listings().GetByID(ctx, b.ListingID)
	if err != nil {
		return nil, storageFailure("Failed to load booking", err)
	}
	if listing != nil {
		detail.Listing.Slug = listing.Slug
		detail.Listing.Title = listing.Title
		prop, err := s.store.Properties().GetByID(ctx, listing.PropertyID)
		if err != nil {
			return nil, storageFailure("Failed to load booking", err)
		}
		if prop != nil {
			detail.PropertyAddress = prop.Address
		}
	}
	return detail, nil
}
