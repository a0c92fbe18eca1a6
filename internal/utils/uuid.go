package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for newly created entities.
// Version 7 UUIDs are time-ordered, which keeps primary key indexes compact.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
