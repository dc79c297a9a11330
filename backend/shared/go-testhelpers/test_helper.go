package testhelpers

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// TestHelper bundles what the marketplace integration suite needs: the
// running service's URL, a direct DB handle for assertions, and the
// secrets the suite signs requests with.
type TestHelper struct {
	T                   *testing.T
	Ctx                 context.Context
	BaseURL             string
	DB                  *pgxpool.Pool
	Store               repositories.Store
	StripeWebhookSecret string
	OperatorEmail       string
	OperatorPassword    string

	// From ldflags
	AppName         string
	UniqueRunNumber string
	UniqueRunnerID  string
}

// NewTestHelper is meant to be called once from TestMain.
func NewTestHelper(t *testing.T, appName, uniqueRunID, uniqueRunNum string) *TestHelper {
	baseURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if baseURL == "" {
		log.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL env var is missing")
	}

	effectiveURL := dbURL
	if uniqueRunID != "" {
		var err error
		effectiveURL, err = utils.WithIsolatedRole(dbURL, uniqueRunID, uniqueRunNum)
		require.NoError(t, err)
	}

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, effectiveURL)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return &TestHelper{
		T:                   t,
		Ctx:                 ctx,
		BaseURL:             baseURL,
		DB:                  pool,
		Store:               repositories.NewStore(pool),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		OperatorEmail:       os.Getenv("OPERATOR_EMAIL"),
		OperatorPassword:    os.Getenv("OPERATOR_PASSWORD"),
		AppName:             appName,
		UniqueRunnerID:      uniqueRunID,
		UniqueRunNumber:     uniqueRunNum,
	}
}
