package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	LockByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Project, error)

	// List returns projects newest-updated first, optionally filtered by status.
	List(ctx context.Context, status *models.ProjectStatus) ([]*models.Project, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) error
	UpdateIfVersion(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Project) error) error
}

type projectRepo struct {
	table versionedTable[*models.Project]
	db    DB
}

func NewProjectRepository(db DB) ProjectRepository {
	r := &projectRepo{db: db}
	r.table = newVersionedTable(db, baseSelectProject()+" WHERE id=$1", scanProject)
	return r
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO projects (
            id, property_id, status, notes,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4, NOW(), NOW(), 1)
    `, p.ID, p.PropertyID, p.Status, p.Notes)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return r.table.get(ctx, id)
}

func (r *projectRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return r.table.lock(ctx, id)
}

func (r *projectRepo) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Project, error) {
	row := r.db.QueryRow(ctx, baseSelectProject()+" WHERE property_id=$1", propertyID)
	return scanProject(row)
}

func (r *projectRepo) List(ctx context.Context, status *models.ProjectStatus) ([]*models.Project, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = r.db.Query(ctx, baseSelectProject()+" WHERE status=$1 ORDER BY updated_at DESC", *status)
	} else {
		rows, err = r.db.Query(ctx, baseSelectProject()+" ORDER BY updated_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE projects
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepo) UpdateIfVersion(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE projects
        SET notes=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2 AND row_version=$3
    `, p.Notes, p.ID, expected)
}

func (r *projectRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Project) error) error {
	return r.table.updateWithRetry(ctx, id, mutate, r.UpdateIfVersion)
}

func baseSelectProject() string {
	return `
        SELECT
            id, property_id, status, notes,
            created_at, updated_at, row_version
        FROM projects
    `
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.PropertyID,
		&p.Status,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
