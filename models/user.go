package models

import "time"

// Roles a user account can hold. Every account is created as a patient;
// the single admin account is provisioned lazily on first admin login.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUID), assigned at creation
	// and immutable afterwards.
	ID string `json:"id"`

	// Username is the unique, case-sensitive display name used during
	// authentication.
	Username string `json:"username"`

	// Email is the unique contact address. It is stored lower-cased.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// It is never serialized and must never leave the server process.
	PasswordHash string `json:"-"`

	// Role is the privilege class of the account: RolePatient or RoleAdmin.
	Role string `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
