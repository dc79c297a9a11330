package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/staynest/mono-repo/backend/shared/go-utils"
)

// storageFailure turns a storage error into an AppError. AppErrors raised
// inside a transaction pass through untouched; connectivity failures
// become 503 and everything else a 500 with publicMsg.
func storageFailure(publicMsg string, err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if repositories.IsConnectivityError(err) {
		return &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeServiceUnavailable,
			Message:    constants.MsgDatabaseUnavailable,
			Err:        err,
		}
	}
	if errors.Is(err, utils.ErrRowVersionConflict) {
		return utils.Conflict(utils.ErrCodeRowVersionConflict, "The record was modified concurrently. Please retry.", err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFound(constants.MsgNotFound, err)
	}
	return utils.Internal(publicMsg, err)
}

func wrongStatus(action string, status models.ProjectStatus) error {
	return utils.Conflict(
		utils.ErrCodeWrongStatus,
		fmt.Sprintf("Cannot %s a project in status %s", action, status),
		utils.ErrWrongStatus,
	)
}

func projectNotFound(id uuid.UUID) error {
	return utils.NotFound("Project not found", fmt.Errorf("project %s", id))
}

// appendEvent writes an EventLog row through the caller's transaction so
// the audit record commits or rolls back with the change it describes.
func appendEvent(
	ctx context.Context,
	tx repositories.Store,
	entityType models.EventEntityType,
	entityID uuid.UUID,
	eventType models.EventType,
	actorID string,
	data any,
) error {
	entry := &models.EventLog{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Type:       eventType,
		ActorID:    utils.NilIfBlank(actorID),
	}
	if data != nil {
		marshalled, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal event data: %w", err)
		}
		raw := json.RawMessage(marshalled)
		entry.Data = &raw
	}
	return tx.EventLogs().Create(ctx, entry)
}

// invalid is a 400 that keeps cause for logs and errors.Is.
func invalid(message string, cause error) error {
	appErr := utils.Validation(message, nil)
	appErr.Err = cause
	return appErr
}
