package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.FreelancerApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FreelancerApplication, error)
	GetByProjectAndFreelancer(ctx context.Context, projectID, freelancerID uuid.UUID) (*models.FreelancerApplication, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FreelancerApplication, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	// RejectAllForProject marks every application of the project REJECTED.
	RejectAllForProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type applicationRepo struct {
	db DB
}

func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.FreelancerApplication) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO freelancer_applications (
            id, project_id, freelancer_id, message, status, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
    `, a.ID, a.ProjectID, a.FreelancerID, a.Message, a.Status)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FreelancerApplication, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", id)
	return scanApplication(row)
}

func (r *applicationRepo) GetByProjectAndFreelancer(ctx context.Context, projectID, freelancerID uuid.UUID) (*models.FreelancerApplication, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE project_id=$1 AND freelancer_id=$2", projectID, freelancerID)
	return scanApplication(row)
}

func (r *applicationRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FreelancerApplication, error) {
	rows, err := r.db.Query(ctx, baseSelectApplication()+" WHERE project_id=$1 ORDER BY created_at", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.FreelancerApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE freelancer_applications SET status=$1, updated_at=NOW() WHERE id=$2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepo) RejectAllForProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE freelancer_applications SET status=$1, updated_at=NOW() WHERE project_id=$2
    `, models.ApplicationStatusRejected, projectID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectApplication() string {
	return `
        SELECT id, project_id, freelancer_id, message, status, created_at, updated_at
        FROM freelancer_applications
    `
}

func scanApplication(row pgx.Row) (*models.FreelancerApplication, error) {
	var a models.FreelancerApplication
	err := row.Scan(&a.ID, &a.ProjectID, &a.FreelancerID, &a.Message, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
