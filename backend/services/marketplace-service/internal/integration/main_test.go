//go:build (dev_test || staging_test) && integration

package integration

import (
	"log"
	"os"
	"testing"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/config"
	"github.com/staynest/mono-repo/backend/shared/go-testhelpers"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

var h *testhelpers.TestHelper

// TestMain connects one TestHelper to the running service and its database.
func TestMain(m *testing.M) {
	utils.InitLogger(config.AppName)

	if config.AppName == "" {
		log.Fatal("config.AppName is empty or not set (ldflags missing?)")
	}
	if config.UniqueRunnerID == "" {
		log.Fatal("config.UniqueRunnerID is empty or not set")
	}
	if config.UniqueRunNumber == "" {
		log.Fatal("config.UniqueRunNumber is empty or not set")
	}

	// TestMain runs before any test, so the helper gets a bare testing.T.
	t := &testing.T{}
	h = testhelpers.NewTestHelper(t, config.AppName, config.UniqueRunnerID, config.UniqueRunNumber)

	log.Printf("marketplace-service integration tests: baseURL=%s, env=%s", h.BaseURL, os.Getenv("ENV"))
	os.Exit(m.Run())
}
