package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	got []CheckoutRequest
	err error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, string, error) {
	g.got = append(g.got, req)
	if g.err != nil {
		return "", "", g.err
	}
	return "https://checkout.stripe.test/c/" + req.BookingID.String(), "cs_test_1", nil
}

// publishedStay runs the operator flow end to end and returns the live listing.
func publishedStay(t *testing.T, store *testhelpers.MemStore, rate, fee, maxGuests int) *models.Listing {
	t.Helper()
	ctx := context.Background()
	_, proj := seedIntake(t, store)
	projects := newProjectService(store)
	_, err := projects.Approve(ctx, testOperator, proj.ID)
	require.NoError(t, err)
	app := seedApplication(t, store, proj.ID)
	_, err = projects.Assign(ctx, testOperator, proj.ID, app.ID)
	require.NoError(t, err)
	_, err = NewListingService(store, newMemPhotoStore()).SaveListing(ctx, testOperator, proj.ID, dtos.SaveListingRequest{
		Title: "Harbour cottage", Slug: "harbour-" + uuid.NewString()[:8], NightlyRate: rate, CleaningFee: fee, MaxGuests: maxGuests,
	}, nil)
	require.NoError(t, err)
	listing, err := projects.Publish(ctx, testOperator, proj.ID)
	require.NoError(t, err)
	return listing
}

func bookingRequest(listingID uuid.UUID, in, out string, guests int) dtos.CreateBookingRequest {
	return dtos.CreateBookingRequest{
		ListingID:  listingID.String(),
		CheckIn:    in,
		CheckOut:   out,
		Guests:     guests,
		GuestEmail: "Guest@Example.com",
	}
}

func TestFullFlowPricesThreeNights(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	listing := publishedStay(t, store, 120, 20, 4)
	svc := NewBookingService(store, nil, "https://staynest.test/")

	resp, err := svc.CreateBooking(ctx, bookingRequest(listing.ID, "2025-07-01", "2025-07-04", 2))
	require.NoError(t, err)
	require.Equal(t, int64(38000), resp.TotalAmount)
	require.Equal(t, "usd", resp.Currency)
	require.Equal(t, "https://staynest.test/booking/success?bookingId="+resp.BookingID, resp.RedirectURL)

	stored, _ := store.Bookings().GetByID(ctx, uuid.MustParse(resp.BookingID))
	require.Equal(t, models.BookingStatusPendingPayment, stored.Status)
	require.Equal(t, "guest@example.com", stored.GuestEmail)
	require.Equal(t, int64(38000), stored.TotalAmount)
}

func TestCreateBookingUsesGateway(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	listing := publishedStay(t, store, 100, 0, 2)
	gw := &fakeGateway{}
	svc := NewBookingService(store, gw, "https://staynest.test")

	resp, err := svc.CreateBooking(ctx, bookingRequest(listing.ID, "2025-07-01", "2025-07-02", 1))
	require.NoError(t, err)
	require.Len(t, gw.got, 1)
	require.Equal(t, int64(10000), gw.got[0].AmountMinor)
	require.Equal(t, 1, gw.got[0].Nights)
	require.Equal(t, "https://staynest.test/booking/canceled?bookingId="+resp.BookingID, gw.got[0].CancelURL)
	require.Equal(t, "https://checkout.stripe.test/c/"+resp.BookingID, resp.RedirectURL)
}

func TestCreateBookingGatewayFailure(t *testing.T) {
	store := testhelpers.NewMemStore()
	listing := publishedStay(t, store, 100, 0, 2)
	svc := NewBookingService(store, &fakeGateway{err: errors.New("stripe down")}, "")

	_, err := svc.CreateBooking(context.Background(), bookingRequest(listing.ID, "2025-07-01", "2025-07-02", 1))
	appErr := requireAppError(t, err, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure)
	require.Equal(t, constants.MsgCheckoutFailed, appErr.Message)
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	listing := publishedStay(t, store, 100, 0, 2)
	svc := NewBookingService(store, nil, "")

	_, err := svc.CreateBooking(ctx, bookingRequest(listing.ID, "2025-07-04", "2025-07-04", 1))
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Equal(t, constants.MsgCheckoutOrder, appErr.Message)

	_, err = svc.CreateBooking(ctx, bookingRequest(listing.ID, "2025-07-04", "2025-07-01", 1))
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)

	_, err = svc.CreateBooking(ctx, bookingRequest(listing.ID, "2025-07-01", "2025-07-03", 3))
	appErr = requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Equal(t, constants.MsgTooManyGuests, appErr.Message)

	_, err = svc.CreateBooking(ctx, bookingRequest(uuid.New(), "2025-07-01", "2025-07-03", 1))
	requireNotFound(t, err)
}

func TestCreateBookingOnDraftListing(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	_, proj := seedIntake(t, store)
	draft, err := NewListingService(store, newMemPhotoStore()).SaveListing(ctx, testOperator, proj.ID,
		dtos.SaveListingRequest{Title: "Draft", Slug: "draft", NightlyRate: 50, MaxGuests: 2}, nil)
	require.NoError(t, err)

	_, err = NewBookingService(store, nil, "").CreateBooking(ctx, bookingRequest(draft.ID, "2025-07-01", "2025-07-03", 1))
	requireAppError(t, err, http.StatusConflict, internal_utils.ErrCodeListingNotBookable)
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	listing := publishedStay(t, store, 120, 20, 4)
	svc := NewBookingService(store, nil, "")

	resp, err := svc.CreateBooking(ctx, bookingRequest(listing.ID, "2025-07-01", "2025-07-04", 2))
	require.NoError(t, err)

	detail, err := svc.GetBooking(ctx, uuid.MustParse(resp.BookingID))
	require.NoError(t, err)
	require.Equal(t, "2025-07-01", detail.CheckIn)
	require.Equal(t, "2025-07-04", detail.CheckOut)
	require.Equal(t, listing.Title, detail.Listing.Title)
	require.Equal(t, "1 Quay Road", detail.PropertyAddress)

	_, err = svc.GetBooking(ctx, uuid.New())
	requireNotFound(t, err)
}
