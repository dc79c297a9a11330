package controllers

import (
	"context"
	"net/http"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/dtos"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController checks DB connectivity.
type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "OK"})
}
