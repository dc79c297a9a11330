package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

func ownerRequest() dtos.OwnerSubmitRequest {
	return dtos.OwnerSubmitRequest{
		OwnerName:       "  Olive Owner ",
		OwnerEmail:      "Olive@Example.com",
		Title:           "Harbour cottage",
		Description:     "Two rooms by the water",
		Address:         "1 Quay Road",
		BaseNightlyRate: 120,
		MaxGuests:       4,
		Consent:         true,
	}
}

func newIntakeService(store *testhelpers.MemStore, photos PhotoStore) *IntakeService {
	svc := NewIntakeService(&config.Config{}, store, photos)
	svc.now = func() time.Time { return time.UnixMilli(1750000000000) }
	return svc
}

func TestSubmitCreatesPropertyAndProject(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	photos := newMemPhotoStore()
	svc := newIntakeService(store, photos)

	resp, err := svc.Submit(ctx, ownerRequest(), []dtos.UploadedPhoto{
		{Filename: "front.PNG", Data: testhelpers.TinyPNG},
		{Filename: "empty.jpg"},
		{Filename: "noext", Data: []byte("jpeg")},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	prop, err := store.Properties().GetByID(ctx, uuid.MustParse(resp.PropertyID))
	require.NoError(t, err)
	require.Equal(t, "Olive Owner", prop.OwnerName)
	require.Equal(t, "olive@example.com", prop.OwnerEmail)
	require.Equal(t, models.PropertyStatusPendingReview, prop.Status)
	require.Len(t, prop.Photos, 2)
	require.True(t, strings.HasPrefix(prop.Photos[0], "/api/v1/photos/p-1750000000000-"))
	require.True(t, strings.HasSuffix(prop.Photos[0], "-0.png"))
	require.True(t, strings.HasSuffix(prop.Photos[1], "-1.jpg"))
	require.Len(t, photos.files, 2)

	proj, err := store.Projects().GetByID(ctx, uuid.MustParse(resp.ProjectID))
	require.NoError(t, err)
	require.Equal(t, prop.ID, proj.PropertyID)
	require.Equal(t, models.ProjectStatusIntake, proj.Status)
}

func TestSubmitPhotoRules(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()
	photos := newMemPhotoStore()
	svc := newIntakeService(store, photos)

	_, err := svc.Submit(ctx, ownerRequest(), nil)
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Equal(t, "Please upload at least one photo.", appErr.Message)
	require.ErrorIs(t, err, internal_utils.ErrNoPhotos)

	_, err = svc.Submit(ctx, ownerRequest(), []dtos.UploadedPhoto{{Filename: "a.jpg"}})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)

	big := make([]byte, utils.MaxPhotoUploadBytes+1)
	_, err = svc.Submit(ctx, ownerRequest(), []dtos.UploadedPhoto{{Filename: "a.jpg", Data: big}})
	appErr = requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Contains(t, appErr.Message, "4MB")
	require.ErrorIs(t, err, internal_utils.ErrPhotosTooLarge)

	require.Empty(t, photos.files)
	projects, err := store.Projects().List(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestSubmitPhotoStoreFailure(t *testing.T) {
	store := testhelpers.NewMemStore()
	photos := newMemPhotoStore()
	photos.err = errors.New("bucket offline")
	svc := newIntakeService(store, photos)

	_, err := svc.Submit(context.Background(), ownerRequest(),
		[]dtos.UploadedPhoto{{Filename: "a.jpg", Data: testhelpers.TinyPNG}})
	appErr := requireAppError(t, err, http.StatusInternalServerError, utils.ErrCodeInternal)
	require.Equal(t, "Failed to submit. Please try again.", appErr.Message)
}

func TestSubmitDatabaseUnavailable(t *testing.T) {
	store := testhelpers.NewMemStore()
	store.SetFailure(&pgconn.PgError{Code: "08006", Message: "connection failure"})
	svc := newIntakeService(store, newMemPhotoStore())

	_, err := svc.Submit(context.Background(), ownerRequest(),
		[]dtos.UploadedPhoto{{Filename: "a.jpg", Data: testhelpers.TinyPNG}})
	requireAppError(t, err, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable)
}

func TestSubmitDeliverabilityCheck(t *testing.T) {
	ctx := context.Background()
	upload := []dtos.UploadedPhoto{{Filename: "a.jpg", Data: testhelpers.TinyPNG}}

	store := testhelpers.NewMemStore()
	svc := newIntakeService(store, newMemPhotoStore())
	svc.checkEmail = true

	var checked []string
	svc.validateEmail = func(ctx context.Context, apiKey, email string, withSendGrid bool) (bool, error) {
		checked = append(checked, email)
		return false, nil
	}
	_, err := svc.Submit(ctx, ownerRequest(), upload)
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	require.ErrorIs(t, err, utils.ErrInvalidEmail)
	require.Equal(t, []string{"olive@example.com"}, checked)

	svc.validateEmail = func(ctx context.Context, apiKey, email string, withSendGrid bool) (bool, error) {
		return false, errors.New("sendgrid timeout")
	}
	resp, err := svc.Submit(ctx, ownerRequest(), upload)
	require.NoError(t, err)
	require.True(t, resp.Success)
}
