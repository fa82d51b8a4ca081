package domain

import "time"

// Role is the authorization level attached to a user and embedded in session tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account. PasswordHash and ConfirmationToken never leave the server.
type User struct {
	ID                string    `json:"id"`
	Login             string    `json:"login"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"fullName"`
	Role              Role      `json:"role"`
	EmailConfirmed    bool      `json:"emailConfirmed"`
	ConfirmationToken *string   `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// HasPendingToken reports whether token is the one stored for a confirmation or reset flow.
func (u *User) HasPendingToken(token string) bool {
	return u != nil && u.ConfirmationToken != nil && token != "" && *u.ConfirmationToken == token
}

func (u *User) SetPendingToken(token string) {
	u.ConfirmationToken = &token
}

func (u *User) ClearPendingToken() {
	u.ConfirmationToken = nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// PublicUser is the view of a user other accounts may see.
type PublicUser struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Login: u.Login, FullName: u.FullName, Role: u.Role}
}

// Identity is what the access guard attaches to an authenticated request.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
