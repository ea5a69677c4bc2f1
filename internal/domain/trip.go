package domain

import "time"

type Trip struct {
	ID                  int64      `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	Description         *string    `json:"description,omitempty" db:"description"`
	InviteCode          string     `json:"inviteCode" db:"invite_code"`
	InviteCodeExpiresAt *time.Time `json:"inviteCodeExpiresAt" db:"invite_code_expires_at"`
	CreatedBy           int64      `json:"createdBy" db:"created_by"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

// InviteExpired reports whether the invite code is past its expiry at now.
// A nil expiry never expires.
func (t *Trip) InviteExpired(now time.Time) bool {
	return t.InviteCodeExpiresAt != nil && t.InviteCodeExpiresAt.Before(now)
}

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

type TripMember struct {
	TripID   int64      `json:"tripId" db:"trip_id"`
	UserID   int64      `json:"userId" db:"user_id"`
	UserName string     `json:"userName" db:"user_name"`
	Role     MemberRole `json:"role" db:"role"`
	JoinedAt time.Time  `json:"joinedAt" db:"joined_at"`
}

func (m *TripMember) IsAdmin() bool {
	return m != nil && m.Role == RoleAdmin
}

// MaxExpirationMinutes caps how far ahead an invite code can expire (30 days).
const MaxExpirationMinutes = 30 * 24 * 60

type InviteExpirationInput struct {
	ExpirationMinutes *int `json:"expirationMinutes"`
}

type InviteExpirationResponse struct {
	ExpiresAt *time.Time `json:"expiresAt"`
}

type RegenerateInviteResponse struct {
	NewInviteCode string     `json:"newInviteCode"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

type JoinTripInput struct {
	InviteCode string `json:"inviteCode"`
	UserName   string `json:"userName"`
}

type InviteEmailInput struct {
	Email string `json:"email"`
}

// ActivityInput is reported by the expense, packing and chat components so
// the server can fan out a notification to trip members.
type ActivityInput struct {
	Type     NotificationType `json:"type"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	ItemName string           `json:"itemName"`
	UserName string           `json:"userName"`
}
