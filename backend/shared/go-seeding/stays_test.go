package seeding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoStaysIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemStore()

	require.NoError(t, SeedDemoStays(ctx, store))
	require.NoError(t, SeedDemoStays(ctx, store))

	published, err := store.Listings().ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, DemoListingSlug, published[0].Slug)

	intake, err := store.Projects().GetByID(ctx, uuid.MustParse(DemoIntakeProjectID))
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusIntake, intake.Status)

	all, err := store.Projects().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
