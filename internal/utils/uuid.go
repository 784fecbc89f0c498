package utils

import "github.com/google/uuid"

// UUIDGenerator issues plan ids. Ids are UUIDv7, so they sort by creation
// time; a random v4 id is used if the clock source fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
