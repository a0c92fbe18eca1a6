package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// settings are missing after all sources have been merged.
var (
	// ErrNoTokenSignKey indicates that the process-wide token signing key
	// was not provided by any configuration source.
	ErrNoTokenSignKey = errors.New("token sign key is not configured")
	// ErrNoAdminPassword indicates that the admin bootstrap password was
	// not provided by any configuration source.
	ErrNoAdminPassword = errors.New("admin bootstrap password is not configured")
	// ErrNoDatabaseDSN indicates that the database connection string was
	// not provided by any configuration source.
	ErrNoDatabaseDSN = errors.New("database DSN is not configured")
)
