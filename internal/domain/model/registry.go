package model

import (
	"fmt"

	"threatmap/internal/log"
)

// ThreatModel is the registry owning every entity of one modeling session.
// A single map keyed by ID backs the flat identifier namespace across
// elements, threats, and mitigations; the per-kind slices preserve
// registration order. Entities are only ever added, never removed.
type ThreatModel struct {
	name        string
	description string
	entities    map[ID]Entity
	elements    []Element
	boundaries  []*Boundary
	threats     []*Threat
	mitigations []*Mitigation
}

// NewThreatModel creates an empty registry.
func NewThreatModel(name, description string) *ThreatModel {
	return &ThreatModel{
		name:        name,
		description: description,
		entities:    make(map[ID]Entity),
	}
}

// Name returns the model's name.
func (tm *ThreatModel) Name() string {
	return tm.name
}

// Description returns the model's description.
func (tm *ThreatModel) Description() string {
	return tm.description
}

func (tm *ThreatModel) String() string {
	return fmt.Sprintf("<ThreatModel %s>", tm.name)
}

// AddElement registers a diagram element. It fails with
// ErrDuplicateIdentifier on any namespace collision, with
// ErrMissingEndpoint when a dataflow endpoint is not registered yet, and
// with a lookup error when a boundary declares an unregistered parent. The
// registry is unchanged on failure.
func (tm *ThreatModel) AddElement(e Element) error {
	if e == nil {
		return ErrNilEntity
	}
	if tm.Contains(e.Identifier()) {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, e.Identifier())
	}

	switch el := e.(type) {
	case *Dataflow:
		for _, endpoint := range []ID{el.FirstID(), el.SecondID()} {
			if !tm.Contains(endpoint) {
				return fmt.Errorf("%w: %s (referenced by dataflow %s)",
					ErrMissingEndpoint, endpoint, el.Identifier())
			}
		}
	case *Boundary:
		if pid := el.ParentID(); pid != "" {
			if _, err := tm.Get(pid); err != nil {
				return fmt.Errorf("resolving parent of boundary %s: %w", el.Identifier(), err)
			}
		}
		el.setNodes(tm.expandMembers(el))
	}

	tm.entities[e.Identifier()] = e
	tm.elements = append(tm.elements, e)
	if b, ok := e.(*Boundary); ok {
		tm.boundaries = append(tm.boundaries, b)
	}
	return nil
}

// expandMembers performs the structural one-level expansion of a boundary's
// member list: members already resolving to a boundary contribute their own
// declared members (not their nodes, which may not be in final form yet),
// everything else is kept as a leaf. This step is repeatable; the recursive
// flattening used at traversal time lives on BoundaryForest.
func (tm *ThreatModel) expandMembers(b *Boundary) []ID {
	var nodes []ID
	for _, member := range b.members {
		if child, ok := tm.boundary(member); ok {
			nodes = append(nodes, child.members...)
		} else {
			nodes = append(nodes, member)
		}
	}
	return nodes
}

// AddElements registers elements in order, stopping at the first failure.
func (tm *ThreatModel) AddElements(elements []Element) error {
	for _, e := range elements {
		if err := tm.AddElement(e); err != nil {
			return err
		}
	}
	return nil
}

// AddThreat registers a threat. It fails with ErrDuplicateIdentifier on a
// namespace collision. When the threat carries only child identifiers,
// every ID that already resolves to a registered threat is mirrored into
// the object view; unresolved IDs are deferred silently and surfaced by
// Check, since the referenced sibling may be added later.
func (tm *ThreatModel) AddThreat(t *Threat) error {
	if t == nil {
		return ErrNilEntity
	}
	if tm.Contains(t.Identifier()) {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, t.Identifier())
	}

	if len(t.childThreats) == 0 {
		for _, id := range t.childThreatIDs {
			if child, ok := tm.threatByID(id); ok {
				t.childThreats = append(t.childThreats, child)
			}
		}
	}

	tm.entities[t.Identifier()] = t
	tm.threats = append(tm.threats, t)
	return nil
}

// AddThreats registers threats in bulk. Duplicates are skipped with a log
// line rather than failing: enumeration methods are expected to be re-run
// against an already populated model without duplicating threats.
func (tm *ThreatModel) AddThreats(threats []*Threat) {
	for _, t := range threats {
		if err := tm.AddThreat(t); err != nil {
			log.Debug(log.CatModel, "skipping threat", "error", err)
		}
	}
}

// AddMitigation registers a mitigation. It fails with
// ErrDuplicateIdentifier on a namespace collision.
func (tm *ThreatModel) AddMitigation(m *Mitigation) error {
	if m == nil {
		return ErrNilEntity
	}
	if tm.Contains(m.Identifier()) {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, m.Identifier())
	}
	tm.entities[m.Identifier()] = m
	tm.mitigations = append(tm.mitigations, m)
	return nil
}

// AddMitigations registers mitigations in order, stopping at the first
// failure.
func (tm *ThreatModel) AddMitigations(mitigations []*Mitigation) error {
	for _, m := range mitigations {
		if err := tm.AddMitigation(m); err != nil {
			return err
		}
	}
	return nil
}

// Get looks an ID up across elements, threats, and mitigations. It returns
// ErrNotFound when the ID resolves to nothing.
func (tm *ThreatModel) Get(id ID) (Entity, error) {
	if e, ok := tm.entities[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Contains reports whether the ID exists anywhere in the registry.
func (tm *ThreatModel) Contains(id ID) bool {
	_, ok := tm.entities[id]
	return ok
}

// Elements returns all registered elements in registration order.
func (tm *ThreatModel) Elements() []Element {
	return append([]Element(nil), tm.elements...)
}

// ThreatBearingElements returns all registered elements except boundaries,
// which are not threat-bearing. This is the element collection handed to
// threat enumeration methods.
func (tm *ThreatModel) ThreatBearingElements() []Element {
	result := make([]Element, 0, len(tm.elements))
	for _, e := range tm.elements {
		if e.Kind() == KindBoundary {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Boundaries returns all registered boundaries in registration order.
func (tm *ThreatModel) Boundaries() []*Boundary {
	return append([]*Boundary(nil), tm.boundaries...)
}

// Threats returns all registered threats in registration order.
func (tm *ThreatModel) Threats() []*Threat {
	return append([]*Threat(nil), tm.threats...)
}

// RootThreats returns the threats that no other threat claims as a child.
// These are the roots of the model's attack trees. Call Check first so that
// id-only child references are resolved into the object view.
func (tm *ThreatModel) RootThreats() []*Threat {
	claimed := make(map[ID]bool)
	for _, t := range tm.threats {
		for _, child := range t.childThreats {
			claimed[child.Identifier()] = true
		}
	}
	var roots []*Threat
	for _, t := range tm.threats {
		if !claimed[t.Identifier()] {
			roots = append(roots, t)
		}
	}
	return roots
}

// Mitigations returns all registered mitigations in registration order.
func (tm *ThreatModel) Mitigations() []*Mitigation {
	return append([]*Mitigation(nil), tm.mitigations...)
}

// boundary returns the registered boundary with the given ID, if any.
func (tm *ThreatModel) boundary(id ID) (*Boundary, bool) {
	b, ok := tm.entities[id].(*Boundary)
	return b, ok
}

// threatByID returns the registered threat with the given ID, if any.
func (tm *ThreatModel) threatByID(id ID) (*Threat, bool) {
	t, ok := tm.entities[id].(*Threat)
	return t, ok
}

// mitigationByID returns the registered mitigation with the given ID, if any.
func (tm *ThreatModel) mitigationByID(id ID) (*Mitigation, bool) {
	m, ok := tm.entities[id].(*Mitigation)
	return m, ok
}
