package model

import "fmt"

// Mitigation is a countermeasure. Each mitigation can be applied to one or
// more threats.
type Mitigation struct {
	id          ID
	name        string
	description string
}

// NewMitigation creates a mitigation. An empty id is replaced with a
// generated one.
func NewMitigation(name string, id ID, description string) *Mitigation {
	return &Mitigation{
		id:          orID(id),
		name:        name,
		description: description,
	}
}

// Identifier returns the mitigation's unique identifier.
func (m *Mitigation) Identifier() ID {
	return m.id
}

// Name returns the mitigation's short display name.
func (m *Mitigation) Name() string {
	return m.name
}

// Description returns the optional longer description.
func (m *Mitigation) Description() string {
	return m.description
}

func (m *Mitigation) String() string {
	return fmt.Sprintf("<Mitigation %s: %s>", m.id, m.name)
}
