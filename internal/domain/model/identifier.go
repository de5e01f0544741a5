package model

import "github.com/google/uuid"

// ID identifies a single entity within a threat model. Elements, threats,
// and mitigations share one flat namespace: no two entities may carry the
// same ID regardless of which collection they live in.
type ID string

// NewID generates a random identifier for entities constructed without one.
func NewID() ID {
	return ID(uuid.NewString())
}

// orID returns id unchanged, or a freshly generated ID when id is empty.
func orID(id ID) ID {
	if id == "" {
		return NewID()
	}
	return id
}
