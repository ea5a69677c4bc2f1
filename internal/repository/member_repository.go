package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tripmate/internal/domain"
)

type MemberRepository interface {
	Get(ctx context.Context, tripID, userID int64) (*domain.TripMember, error)
	ListByTrip(ctx context.Context, tripID int64) ([]domain.TripMember, error)
	Add(ctx context.Context, member *domain.TripMember) error
}

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Get(ctx context.Context, tripID, userID int64) (*domain.TripMember, error) {
	var member domain.TripMember
	query := `SELECT * FROM trip_members WHERE trip_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &member, query, tripID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByTrip(ctx context.Context, tripID int64) ([]domain.TripMember, error) {
	var members []domain.TripMember
	query := `SELECT * FROM trip_members WHERE trip_id = $1 ORDER BY joined_at`

	err := r.db.SelectContext(ctx, &members, query, tripID)
	return members, err
}

// Add inserts the membership; joining a trip twice keeps the first row.
func (r *memberRepository) Add(ctx context.Context, member *domain.TripMember) error {
	query := `
		INSERT INTO trip_members (trip_id, user_id, user_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (trip_id, user_id) DO UPDATE SET user_name = trip_members.user_name
		RETURNING role, joined_at`

	return r.db.QueryRowxContext(ctx, query,
		member.TripID, member.UserID, member.UserName, member.Role,
	).Scan(&member.Role, &member.JoinedAt)
}
