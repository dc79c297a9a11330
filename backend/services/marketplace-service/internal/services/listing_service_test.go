package services

import (
	"bytes"
	"context"
	"net/http"
	"strings"
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

func TestSaveListingCreatesDraftWithDefaults(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	prop, proj := seedIntake(t, store)
	svc := NewListingService(store, newMemPhotoStore())

	l, err := svc.SaveListing(ctx, testOperator, proj.ID, dtos.SaveListingRequest{
		Title: "Harbour cottage",
		Slug:  "Harbour Cottage",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "harbour-cottage", l.Slug)
	require.Equal(t, models.ListingStatusDraft, l.Status)
	require.Equal(t, prop.ID, l.PropertyID)
	require.Equal(t, 0, l.NightlyRate)
	require.Equal(t, 0, l.CleaningFee)
	require.Equal(t, 1, l.MaxGuests)
	require.Nil(t, l.Description)

	events := store.Events()
	require.Len(t, events, 1)
	require.Equal(t, models.EventListingSaved, events[0].Type)
	require.Equal(t, models.EntityListing, events[0].EntityType)
}

func TestSaveListingUpdatesInPlaceAndKeepsStatus(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	prop, proj := seedIntake(t, store)
	photos := newMemPhotoStore()
	svc := NewListingService(store, photos)

	first, err := svc.SaveListing(ctx, testOperator, proj.ID, dtos.SaveListingRequest{
		Title: "Harbour cottage", Slug: "harbour", NightlyRate: 120, CleaningFee: 20, MaxGuests: 4,
	}, []dtos.UploadedPhoto{{Filename: "a.png", Data: testhelpers.TinyPNG}})
	require.NoError(t, err)
	require.Len(t, first.GuestPhotos, 1)
	_, err = newProjectService(store).Publish(ctx, testOperator, proj.ID)
	require.NoError(t, err)

	second, err := svc.SaveListing(ctx, testOperator, proj.ID, dtos.SaveListingRequest{
		Title: "Harbour cottage (sea view)", Slug: "harbour", Description: utils.Ptr("Quiet"), NightlyRate: 130, MaxGuests: 4,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	stored, _ := store.Listings().GetByPropertyID(ctx, prop.ID)
	require.Equal(t, models.ListingStatusPublished, stored.Status)
	require.Equal(t, 130, stored.NightlyRate)
	require.Equal(t, "Quiet", *stored.Description)
	require.Equal(t, first.GuestPhotos, stored.GuestPhotos, "empty upload keeps existing guest photos")
}

func TestSaveListingReplacesGuestPhotos(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	_, proj := seedIntake(t, store)
	photos := newMemPhotoStore()
	svc := NewListingService(store, photos)
	req := dtos.SaveListingRequest{Title: "Cottage", Slug: "cottage"}

	first, err := svc.SaveListing(ctx, testOperator, proj.ID, req, []dtos.UploadedPhoto{
		{Filename: "a.png", Data: testhelpers.TinyPNG},
		{Filename: "b.png", Data: testhelpers.TinyPNG},
	})
	require.NoError(t, err)
	require.Len(t, first.GuestPhotos, 2)

	second, err := svc.SaveListing(ctx, testOperator, proj.ID, req, []dtos.UploadedPhoto{
		{Filename: "noext", Data: testhelpers.TinyPNG},
	})
	require.NoError(t, err)
	want := PhotoURL(internal_utils.GuestPhotoName(first.ID, 0, "noext"))
	require.Equal(t, []string{want}, second.GuestPhotos)
	require.True(t, strings.HasSuffix(want, "-guest-0.jpg"))
}

func TestSaveListingRejectsOversizedPhotos(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	_, proj := seedIntake(t, store)
	photos := newMemPhotoStore()
	svc := NewListingService(store, photos)

	big := bytes.Repeat([]byte{1}, utils.MaxPhotoUploadBytes/2+1)
	_, err := svc.SaveListing(ctx, testOperator, proj.ID, dtos.SaveListingRequest{Title: "x", Slug: "x"},
		[]dtos.UploadedPhoto{{Filename: "a.jpg", Data: big}, {Filename: "b.jpg", Data: big}})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Equal(t, constants.MsgPhotosTooLarge, appErr.Message)
	require.Empty(t, photos.files)
	require.Empty(t, store.Events())
}

func TestSaveListingDuplicateSlugConflicts(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	_, projA := seedIntake(t, store)
	_, projB := seedIntake(t, store)
	svc := NewListingService(store, newMemPhotoStore())

	_, err := svc.SaveListing(ctx, testOperator, projA.ID, dtos.SaveListingRequest{Title: "A", Slug: "same"}, nil)
	require.NoError(t, err)
	_, err = svc.SaveListing(ctx, testOperator, projB.ID, dtos.SaveListingRequest{Title: "B", Slug: "SAME"}, nil)
	requireAppError(t, err, http.StatusConflict, internal_utils.ErrCodeSlugTaken)
}

func TestSaveListingValidation(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	svc := NewListingService(store, newMemPhotoStore())

	_, err := svc.SaveListing(ctx, testOperator, uuid.New(), dtos.SaveListingRequest{Title: " ", Slug: "x"}, nil)
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)

	_, err = svc.SaveListing(ctx, testOperator, uuid.New(), dtos.SaveListingRequest{Title: "x", Slug: "x"}, nil)
	requireNotFound(t, err)
}

func TestStaysOnlyShowPublished(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	propA, projA := seedIntake(t, store)
	_, projB := seedIntake(t, store)
	listings := NewListingService(store, newMemPhotoStore())
	projects := newProjectService(store)

	_, err := listings.SaveListing(ctx, testOperator, projA.ID, dtos.SaveListingRequest{Title: "Live", Slug: "live", NightlyRate: 90}, nil)
	require.NoError(t, err)
	_, err = listings.SaveListing(ctx, testOperator, projB.ID, dtos.SaveListingRequest{Title: "Draft", Slug: "draft"}, nil)
	require.NoError(t, err)
	_, err = projects.Publish(ctx, testOperator, projA.ID)
	require.NoError(t, err)

	stays, err := listings.ListPublishedStays(ctx)
	require.NoError(t, err)
	require.Len(t, stays, 1)
	require.Equal(t, "live", stays[0].Slug)
	require.Equal(t, constants.Currency, stays[0].Currency)
	require.Equal(t, propA.Photos[0], *stays[0].HeroImage, "hero falls back to property photo")
	require.Equal(t, propA.Address, stays[0].Property.Address)

	_, err = listings.GetStayBySlug(ctx, "draft")
	requireNotFound(t, err)
	_, err = listings.GetStayBySlug(ctx, "missing")
	requireNotFound(t, err)

	detail, err := listings.GetStayBySlug(ctx, "LIVE")
	require.NoError(t, err)
	require.Equal(t, propA.OwnerEmail, detail.Property.OwnerEmail)
	require.Equal(t, propA.Photos, detail.Photos)
}

func TestStayPhotosPutGuestPhotosFirst(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	prop, proj := seedIntake(t, store)
	listings := NewListingService(store, newMemPhotoStore())

	l, err := listings.SaveListing(ctx, testOperator, proj.ID, dtos.SaveListingRequest{Title: "Live", Slug: "live"},
		[]dtos.UploadedPhoto{{Filename: "g.webp", Data: testhelpers.TinyPNG}})
	require.NoError(t, err)
	_, err = newProjectService(store).Publish(ctx, testOperator, proj.ID)
	require.NoError(t, err)

	stays, err := listings.ListPublishedStays(ctx)
	require.NoError(t, err)
	require.Equal(t, l.GuestPhotos[0], *stays[0].HeroImage)

	detail, err := listings.GetStayBySlug(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, append([]string{l.GuestPhotos[0]}, prop.Photos...), detail.Photos)
}
