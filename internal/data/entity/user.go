package entity

import (
	"time"

	"github.com/google/uuid"
)

type ClubRole string

const (
	RoleOwner   ClubRole = "OWNER"
	RoleManager ClubRole = "MANAGER"
	RoleDJ      ClubRole = "DJ"
	RoleStaff   ClubRole = "STAFF"
)

type User struct {
	Base
	Email        string  `db:"email"`
	PasswordHash string  `db:"password"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Phone        *string `db:"phone"`
	IsActive     bool    `db:"is_active"`
}

// UserClubRole is a membership: a user may act inside a club only through one.
type UserClubRole struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	ClubID uuid.UUID `db:"club_id"`
	Role   ClubRole  `db:"role"`
}

// Membership is a role joined with its club's name.
type Membership struct {
	ClubID   uuid.UUID
	ClubName string
	Role     ClubRole
}

// Session is the server-side half of a login. A JWT carries Token as its id
// (jti); revoking the row invalidates the JWT before it expires.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"` // described, e.g. "Chrome 120.0 on Windows 10 (desktop)"
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Live reports whether the session may still authenticate requests at now.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
