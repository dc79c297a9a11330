// backend/shared/go-repositories/event_log_repository.go
package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type EventLogRepository interface {
	Create(ctx context.Context, logEntry *models.EventLog) error
	ListByEntity(ctx context.Context, entityType models.EventEntityType, entityID uuid.UUID) ([]*models.EventLog, error)
}

type eventLogRepo struct {
	db DB
}

func NewEventLogRepository(db DB) EventLogRepository {
	return &eventLogRepo{db: db}
}

func (r *eventLogRepo) Create(ctx context.Context, logEntry *models.EventLog) error {
	// jsonb goes over the wire as text.
	var data *string
	if logEntry.Data != nil {
		s := string(*logEntry.Data)
		data = &s
	}
	q := `
        INSERT INTO event_logs (
            id, entity_type, entity_id, type, actor_id, data, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW())
    `
	_, err := r.db.Exec(ctx, q,
		logEntry.ID,
		logEntry.EntityType,
		logEntry.EntityID,
		logEntry.Type,
		logEntry.ActorID,
		data,
	)
	return err
}

func (r *eventLogRepo) ListByEntity(ctx context.Context, entityType models.EventEntityType, entityID uuid.UUID) ([]*models.EventLog, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, entity_type, entity_id, type, actor_id, data, created_at
        FROM event_logs
        WHERE entity_type=$1 AND entity_id=$2
        ORDER BY created_at
    `, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.EventLog
	for rows.Next() {
		var (
			e    models.EventLog
			data []byte
		)
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Type, &e.ActorID, &data, &e.CreatedAt); err != nil {
			return nil, err
		}
		if data != nil {
			raw := json.RawMessage(data)
			e.Data = &raw
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
