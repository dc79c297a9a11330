package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type FreelancerProfileRepository interface {
	Create(ctx context.Context, p *models.FreelancerProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FreelancerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.FreelancerProfile, error)
}

type freelancerProfileRepo struct {
	db DB
}

func NewFreelancerProfileRepository(db DB) FreelancerProfileRepository {
	return &freelancerProfileRepo{db: db}
}

func (r *freelancerProfileRepo) Create(ctx context.Context, p *models.FreelancerProfile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO freelancer_profiles (id, user_id, status, created_at)
        VALUES ($1,$2,$3, NOW())
    `, p.ID, p.UserID, p.Status)
	return err
}

func (r *freelancerProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FreelancerProfile, error) {
	return scanFreelancerProfile(r.db.QueryRow(ctx, `
        SELECT id, user_id, status, created_at FROM freelancer_profiles WHERE id=$1
    `, id))
}

func (r *freelancerProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.FreelancerProfile, error) {
	return scanFreelancerProfile(r.db.QueryRow(ctx, `
        SELECT id, user_id, status, created_at FROM freelancer_profiles WHERE user_id=$1
    `, userID))
}

func scanFreelancerProfile(row pgx.Row) (*models.FreelancerProfile, error) {
	var p models.FreelancerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Status, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
