package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

const testOperator = "operator:ops@staynest.dev"

func seedIntake(t *testing.T, store *testhelpers.MemStore) (*models.Property, *models.Project) {
	t.Helper()
	ctx := context.Background()
	prop := &models.Property{
		ID:              uuid.New(),
		OwnerName:       "Olive Owner",
		OwnerEmail:      "olive@example.com",
		Title:           "Harbour cottage",
		Description:     "Two rooms by the water",
		Address:         "1 Quay Road",
		Photos:          []string{"/api/v1/photos/p-1-abc-0.jpg"},
		BaseNightlyRate: 100,
		MaxGuests:       4,
		Status:          models.PropertyStatusPendingReview,
	}
	require.NoError(t, store.Properties().Create(ctx, prop))
	proj := &models.Project{ID: uuid.New(), PropertyID: prop.ID, Status: models.ProjectStatusIntake}
	require.NoError(t, store.Projects().Create(ctx, proj))
	return prop, proj
}

func seedApplication(t *testing.T, store *testhelpers.MemStore, projectID uuid.UUID) *models.FreelancerApplication {
	t.Helper()
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: testhelpers.UniqueEmail("fl"), Role: models.RoleFreelancer}
	require.NoError(t, store.Users().Create(ctx, user))
	profile := &models.FreelancerProfile{ID: uuid.New(), UserID: user.ID, Status: models.FreelancerProfileStatusActive}
	require.NoError(t, store.FreelancerProfiles().Create(ctx, profile))
	app := &models.FreelancerApplication{
		ID:           uuid.New(),
		ProjectID:    projectID,
		FreelancerID: profile.ID,
		Status:       models.ApplicationStatusApplied,
	}
	require.NoError(t, store.Applications().Create(ctx, app))
	return app
}

func requireAppError(t *testing.T, err error, status int, code string) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode)
	if code != "" {
		require.Equal(t, code, appErr.Code)
	}
	return appErr
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
}

// memPhotoStore records stored photos in memory.
type memPhotoStore struct {
	files map[string][]byte
	err   error
}

func newMemPhotoStore() *memPhotoStore {
	return &memPhotoStore{files: map[string][]byte{}}
}

func (m *memPhotoStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.files[filename] = data
	return PhotoURL(filename), nil
}

func (m *memPhotoStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, internal_utils.ErrPhotoNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
