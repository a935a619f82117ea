package entity

import "time"

// User is the aggregate root for the identity domain.
// Username and email are globally unique; uniqueness is enforced by
// the database constraint, never by a pre-check query.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash Password
	CreatedAt    time.Time
}

// RegisterCommand carries the input for user registration.
type RegisterCommand struct {
	Username string
	Email    string
	Password string
}

// LoginCommand carries the input for login. Login is keyed by email.
type LoginCommand struct {
	Email    string
	Password string
}

// AuthResult is the transient outcome of a successful register or login.
// It is never persisted.
type AuthResult struct {
	Token string
	User  *User
}
