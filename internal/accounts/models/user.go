package models

import (
	"time"

	"sangamsetu/pkg/domain"
)

// User is the identity tracked by the accounts module. Group memberships and
// the flat role classifier are both stored here; the case policy predicates
// check them independently.
type User struct {
	ID           domain.UserID `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"` // Never serialize - contains bcrypt hash
	Role         string        `json:"role"`
	Groups       []string      `json:"groups"`
	Superuser    bool          `json:"superuser"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Actor converts the stored user into the request actor consumed by the
// policy predicates.
func (u *User) Actor() domain.Actor {
	return domain.Actor{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		Groups:        append([]string(nil), u.Groups...),
		Superuser:     u.Superuser,
		Authenticated: true,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResult is the login response. Username and role ride along with the
// token so clients can render role-dependent UI without decoding the JWT.
type TokenResult struct {
	AccessToken string `json:"access"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}
