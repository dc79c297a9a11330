package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByEmail expects an already-normalized address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, name, password_hash, role, created_at)
        VALUES ($1,$2,$3,$4,$5, NOW())
    `, u.ID, u.Email, u.Name, u.PasswordHash, u.Role)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, baseSelectUser()+" WHERE id=$1", id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, baseSelectUser()+" WHERE email=$1", email))
}

func baseSelectUser() string {
	return `SELECT id, email, name, password_hash, role, created_at FROM users`
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
