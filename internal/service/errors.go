package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidGender       = errors.New("gender must be Male, Female or Other")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrTokenInvalid covers a malformed token, a signature mismatch, an
	// expired token, and a token whose bound identity no longer exists.
	// Callers never learn which case occurred.
	ErrTokenInvalid = errors.New("token is expired or invalid")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
