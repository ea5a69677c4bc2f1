package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/domain"
)

type Deliverer struct {
	mock.Mock
}

func (m *Deliverer) Deliver(ctx context.Context, userID int64, env domain.Envelope) error {
	args := m.Called(ctx, userID, env)
	return args.Error(0)
}
