package utils

import "github.com/google/uuid"

// UUIDGenerator mints record ids. Ids are random (version 4) so they leak
// neither creation order nor time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
