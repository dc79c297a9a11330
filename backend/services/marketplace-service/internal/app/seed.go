package app

import (
	"context"
	"fmt"

	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	seeding "github.com/staynest/mono-repo/backend/shared/go-seeding"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// SeedAllTestData inserts the demo stays. It is idempotent on the demo ids.
func SeedAllTestData(ctx context.Context, store repositories.Store) error {
	if err := seeding.SeedDemoStays(ctx, store); err != nil {
		return fmt.Errorf("seed demo stays: %w", err)
	}
	utils.Logger.Info("Seeding completed successfully.")
	return nil
}
