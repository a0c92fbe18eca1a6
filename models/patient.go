package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Genders accepted for a patient intake record.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// StringList is a []string persisted as a jsonb column.
// It implements sql.Scanner and driver.Valuer so the stdlib database/sql
// layer can move it in and out of PostgreSQL.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as an empty array
// rather than NULL so the column never needs null handling on read.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported source type for StringList")
	}
}

// Patient represents a medical intake record owned by exactly one user.
// The owner reference is set once at creation and never changes.
type Patient struct {
	// ID is the unique identifier of the intake record (UUID).
	ID string `json:"id"`

	// UserID is the identifier of the owning user. Immutable.
	UserID string `json:"user_id"`

	// Username and Email are a snapshot of the owner's identity taken at
	// record creation time, kept so admin listings do not need a join.
	Username string `json:"username"`
	Email    string `json:"email"`

	FirstName     string `json:"first_name"`
	MiddleInitial string `json:"middle_initial,omitempty"`
	LastName      string `json:"last_name"`

	DateOfBirth time.Time `json:"date_of_birth"`
	PhoneNumber string    `json:"phone_number"`

	// Gender is one of GenderMale, GenderFemale, GenderOther.
	Gender  string `json:"gender"`
	Address string `json:"address"`

	Allergies StringList `json:"allergies"`
	Illnesses StringList `json:"illnesses"`

	HasInsurance          bool   `json:"has_insurance"`
	InsuranceProvider     string `json:"insurance_provider,omitempty"`
	InsuranceMemberNumber string `json:"insurance_member_number,omitempty"`

	RegistrationDate time.Time `json:"registration_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Patient model.
func (p Patient) TableName() string {
	return "patients"
}

// PatientUpdate describes a partial update of an intake record.
// Only non-nil fields are written (partial update support); ownership
// fields (ID, UserID, Username, Email) are never updatable.
type PatientUpdate struct {
	FirstName     *string `json:"first_name,omitempty"`
	MiddleInitial *string `json:"middle_initial,omitempty"`
	LastName      *string `json:"last_name,omitempty"`

	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`

	Gender  *string `json:"gender,omitempty"`
	Address *string `json:"address,omitempty"`

	Allergies *StringList `json:"allergies,omitempty"`
	Illnesses *StringList `json:"illnesses,omitempty"`

	HasInsurance          *bool   `json:"has_insurance,omitempty"`
	InsuranceProvider     *string `json:"insurance_provider,omitempty"`
	InsuranceMemberNumber *string `json:"insurance_member_number,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u PatientUpdate) IsEmpty() bool {
	return u.FirstName == nil &&
		u.MiddleInitial == nil &&
		u.LastName == nil &&
		u.DateOfBirth == nil &&
		u.PhoneNumber == nil &&
		u.Gender == nil &&
		u.Address == nil &&
		u.Allergies == nil &&
		u.Illnesses == nil &&
		u.HasInsurance == nil &&
		u.InsuranceProvider == nil &&
		u.InsuranceMemberNumber == nil
}
