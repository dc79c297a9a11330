package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, a *models.Assignment) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assignment, error)
}

type assignmentRepo struct {
	db DB
}

func NewAssignmentRepository(db DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO assignments (id, project_id, freelancer_id, status, created_at)
        VALUES ($1,$2,$3,$4, NOW())
    `, a.ID, a.ProjectID, a.FreelancerID, a.Status)
	return err
}

func (r *assignmentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, project_id, freelancer_id, status, created_at
        FROM assignments WHERE project_id=$1 ORDER BY created_at
    `, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	if err := row.Scan(&a.ID, &a.ProjectID, &a.FreelancerID, &a.Status, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
