package models

// RegisterResponse is the body returned by a successful registration.
// The user projection never includes the credential hash (see User).
type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// LoginResponse is the body returned by a successful login.
// IsAdmin duplicates the role comparison so clients do not need to
// hard-code the role constant.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
	IsAdmin bool   `json:"isAdmin"`
}

// VerifyResponse is the body returned by the token verification endpoint.
// The endpoint never returns a hard error: any failure collapses to
// {"valid": false} with no user projection.
type VerifyResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user,omitempty"`
}

// PatientResponse wraps a mutated intake record together with a
// human-readable confirmation message.
type PatientResponse struct {
	Message string  `json:"message"`
	Patient Patient `json:"patient"`
}

// ErrorResponse is the generic failure body. Details carries optional
// diagnostic text and must stay generic in production deployments.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
