package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v3"

	"tripmate/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendInviteEmail(ctx context.Context, toEmail string, invite Invite) error
}

// Invite is what the invite e-mail shows.
type Invite struct {
	TripName    string
	InviterName string
	Code        string
	ExpiresAt   *time.Time
}

// sender is the part of the resend client the service uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	emails sender
	config *config.Config
	tmpl   *template.Template
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return newService(client.Emails, cfg)
}

func newService(emails sender, cfg *config.Config) *service {
	return &service{
		emails: emails,
		config: cfg,
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/invite.html")),
	}
}

func (s *service) render(data any) (string, error) {
	var body bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) SendInviteEmail(ctx context.Context, toEmail string, invite Invite) error {
	expires := "never"
	if invite.ExpiresAt != nil {
		expires = invite.ExpiresAt.UTC().Format("Jan 2, 2006 15:04 MST")
	}

	data := struct {
		Title   string
		Inviter string
		Trip    string
		Code    string
		Expires string
		Link    string
	}{
		Title:   fmt.Sprintf("Join %s on TripMate", invite.TripName),
		Inviter: invite.InviterName,
		Trip:    invite.TripName,
		Code:    invite.Code,
		Expires: expires,
		Link:    fmt.Sprintf("https://%s/join/%s", s.config.Domain, invite.Code),
	}

	body, err := s.render(data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("TripMate <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body,
		Subject: data.Title,
	}

	_, err = s.emails.SendWithContext(ctx, params)
	return err
}
