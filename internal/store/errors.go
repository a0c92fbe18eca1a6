package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same username or email already exists.
	// The database unique indexes are the authoritative check; registration
	// performs no pre-lookup.
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")

	// ErrUserNotFound is returned when a query expected to match exactly one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrPatientAlreadyExists is returned when an intake record insert
	// violates the one-record-per-owner unique index on user_id.
	ErrPatientAlreadyExists = errors.New("patient information already submitted")

	// ErrPatientNotFound is returned when a query, update, or delete targets
	// an intake record that does not exist or, for owner-scoped
	// operations, exists but belongs to a different user. The two cases are
	// deliberately indistinguishable.
	ErrPatientNotFound = errors.New("patient not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an update request with no fields to set).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
