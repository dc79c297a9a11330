package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

const (
	DemoListedPropertyID  = "5e7e0001-0000-4000-8000-000000000001"
	DemoListedProjectID   = "5e7e0001-0000-4000-8000-000000000002"
	DemoListingID         = "5e7e0001-0000-4000-8000-000000000003"
	DemoIntakePropertyID  = "5e7e0002-0000-4000-8000-000000000001"
	DemoIntakeProjectID   = "5e7e0002-0000-4000-8000-000000000002"
	DemoListingSlug       = "seaside-loft"
	DemoListingPhotoURL   = "/api/v1/photos/demo-seaside-loft.jpg"
	DemoIntakeOwnerEmail  = "owner.demo@staynest.dev"
	DemoListedOwnerEmail  = "harbor.owner@staynest.dev"
	demoListedNightlyRate = 120
	demoListedCleaningFee = 20
)

var errAlreadySeeded = errors.New("already seeded")

// SeedDemoStays inserts one published stay and one property waiting for
// review. Re-running it is a no-op once the demo ids exist.
func SeedDemoStays(ctx context.Context, store repositories.Store) error {
	if err := seedListedStay(ctx, store); err != nil {
		return err
	}
	return seedIntakeProperty(ctx, store)
}

func seedListedStay(ctx context.Context, store repositories.Store) error {
	propID := uuid.MustParse(DemoListedPropertyID)

	err := store.RunInTx(ctx, func(tx repositories.Store) error {
		existing, err := tx.Properties().GetByID(ctx, propID)
		if err != nil {
			return fmt.Errorf("check existing demo property: %w", err)
		}
		if existing != nil {
			return errAlreadySeeded
		}

		prop := &models.Property{
			ID:              propID,
			OwnerName:       "Harbor Homes",
			OwnerEmail:      DemoListedOwnerEmail,
			Title:           "Seaside Loft",
			Description:     "Bright loft two blocks from the beach.",
			Address:         "12 Harbor Way, Santa Cruz, CA",
			Photos:          []string{DemoListingPhotoURL},
			BaseNightlyRate: 100,
			MaxGuests:       4,
			Status:          models.PropertyStatusListed,
		}
		if err := tx.Properties().Create(ctx, prop); err != nil {
			return fmt.Errorf("create demo property: %w", err)
		}

		proj := &models.Project{
			ID:         uuid.MustParse(DemoListedProjectID),
			PropertyID: propID,
			Status:     models.ProjectStatusListed,
		}
		if err := tx.Projects().Create(ctx, proj); err != nil {
			return fmt.Errorf("create demo project: %w", err)
		}

		listing := &models.Listing{
			ID:          uuid.MustParse(DemoListingID),
			PropertyID:  propID,
			Slug:        DemoListingSlug,
			Title:       "Seaside Loft",
			Description: utils.Ptr("Sleeps four, ocean breeze included."),
			NightlyRate: demoListedNightlyRate,
			CleaningFee: demoListedCleaningFee,
			MaxGuests:   4,
			Status:      models.ListingStatusDraft,
		}
		if err := tx.Listings().Create(ctx, listing); err != nil {
			return fmt.Errorf("create demo listing: %w", err)
		}
		if err := tx.Listings().MarkPublished(ctx, listing.ID, time.Now().UTC()); err != nil {
			return fmt.Errorf("publish demo listing: %w", err)
		}
		return nil
	})
	if errors.Is(err, errAlreadySeeded) {
		utils.Logger.Info("seeding: demo stay already present; skipping")
		return nil
	}
	if err != nil {
		return err
	}
	utils.Logger.Infof("seeding: created demo stay slug=%s", DemoListingSlug)
	return nil
}

func seedIntakeProperty(ctx context.Context, store repositories.Store) error {
	propID := uuid.MustParse(DemoIntakePropertyID)

	err := store.RunInTx(ctx, func(tx repositories.Store) error {
		existing, err := tx.Properties().GetByID(ctx, propID)
		if err != nil {
			return fmt.Errorf("check existing intake property: %w", err)
		}
		if existing != nil {
			return errAlreadySeeded
		}

		prop := &models.Property{
			ID:              propID,
			OwnerName:       "Demo Owner",
			OwnerEmail:      DemoIntakeOwnerEmail,
			Title:           "Mountain Cabin",
			Description:     "Wood stove, hot tub, no neighbours.",
			Address:         "88 Pine Ridge Rd, Truckee, CA",
			Photos:          []string{},
			BaseNightlyRate: 150,
			MaxGuests:       6,
			Status:          models.PropertyStatusPendingReview,
		}
		if err := tx.Properties().Create(ctx, prop); err != nil {
			return fmt.Errorf("create intake property: %w", err)
		}
		return tx.Projects().Create(ctx, &models.Project{
			ID:         uuid.MustParse(DemoIntakeProjectID),
			PropertyID: propID,
			Status:     models.ProjectStatusIntake,
		})
	})
	if errors.Is(err, errAlreadySeeded) {
		utils.Logger.Info("seeding: demo intake property already present; skipping")
		return nil
	}
	if err != nil {
		return err
	}
	utils.Logger.Infof("seeding: created demo intake property id=%s", propID)
	return nil
}
