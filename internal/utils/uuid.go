package utils

import "github.com/google/uuid"

// UUIDGenerator produces the opaque identifiers used for notes, image
// association rows and managed image filenames. UUIDv7 keeps identifiers
// roughly sortable by creation time, which makes on-disk artefacts easier
// to eyeball during debugging.
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
