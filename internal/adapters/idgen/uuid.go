// Package idgen generates record identifiers with github.com/google/uuid.
package idgen

import (
	"github.com/google/uuid"

	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// UUIDGenerator issues random (version 4) UUIDs. Quote and collection ids
// are the canonical string form; user ids are the first 32 bits of a fresh
// UUID, so the store retries on the rare collision.
type UUIDGenerator struct{}

var _ ports.IDGenerator = UUIDGenerator{}

// New returns a UUIDGenerator.
func New() UUIDGenerator {
	return UUIDGenerator{}
}

// NewQuoteID returns a new UUID string.
func (UUIDGenerator) NewQuoteID() string {
	return uuid.NewString()
}

// NewCollectionID returns a new UUID string.
func (UUIDGenerator) NewCollectionID() string {
	return uuid.NewString()
}

// NewUserID returns a random non-zero 32-bit id.
func (UUIDGenerator) NewUserID() uint32 {
	for {
		if id := uuid.New().ID(); id != 0 {
			return id
		}
	}
}
