package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendInviteEmail(ctx context.Context, toEmail string, invite email.Invite) error {
	args := m.Called(ctx, toEmail, invite)
	return args.Error(0)
}
