package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tripmate/internal/domain"
)

// ErrInviteCodeTaken is returned when another trip already uses the code.
var ErrInviteCodeTaken = errors.New("invite code already in use")

const uniqueViolation = "23505"

type TripRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Trip, error)
	UpdateInviteExpiration(ctx context.Context, id int64, expiresAt *time.Time) error
	UpdateInviteCode(ctx context.Context, id int64, code string, expiresAt *time.Time) error
}

type tripRepository struct {
	db *sqlx.DB
}

func NewTripRepository(db *sqlx.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	var trip domain.Trip
	query := `SELECT * FROM trips WHERE id = $1`

	err := r.db.GetContext(ctx, &trip, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Trip, error) {
	var trip domain.Trip
	query := `SELECT * FROM trips WHERE invite_code = $1`

	err := r.db.GetContext(ctx, &trip, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) UpdateInviteExpiration(ctx context.Context, id int64, expiresAt *time.Time) error {
	query := `UPDATE trips SET invite_code_expires_at = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, expiresAt)
	return err
}

func (r *tripRepository) UpdateInviteCode(ctx context.Context, id int64, code string, expiresAt *time.Time) error {
	query := `
		UPDATE trips
		SET invite_code = $2, invite_code_expires_at = $3, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, code, expiresAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrInviteCodeTaken
	}
	return err
}
