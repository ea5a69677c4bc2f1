package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Trip   TripRepository
	Member MemberRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Trip:   NewTripRepository(db),
		Member: NewMemberRepository(db),
	}
}
