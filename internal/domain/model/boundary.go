package model

// Boundary is a named trust domain grouping other elements. Members may
// reference plain nodes or other boundaries, including boundaries that are
// registered only later. A boundary may declare a parent boundary by ID;
// parentage is also inferred from membership when the forest is resolved.
type Boundary struct {
	id          ID
	name        string
	description string
	members     []ID
	parentID    ID
	nodes       []ID
}

// NewBoundary creates a boundary with the given direct members. parentID is
// optional; when set it must resolve at registration time.
func NewBoundary(name string, members []ID, id ID, description string, parentID ID) *Boundary {
	return &Boundary{
		id:          orID(id),
		name:        name,
		description: description,
		members:     append([]ID(nil), members...),
		parentID:    parentID,
	}
}

// Identifier returns the boundary's unique identifier.
func (b *Boundary) Identifier() ID {
	return b.id
}

// Name returns the boundary's display name.
func (b *Boundary) Name() string {
	return b.name
}

// Description returns the optional longer description.
func (b *Boundary) Description() string {
	return b.description
}

// Kind returns KindBoundary.
func (b *Boundary) Kind() Kind {
	return KindBoundary
}

// Members returns the boundary's direct member identifiers as declared.
func (b *Boundary) Members() []ID {
	return append([]ID(nil), b.members...)
}

// ParentID returns the declared parent boundary identifier, or "" when the
// boundary declared no parent.
func (b *Boundary) ParentID() ID {
	return b.parentID
}

// Nodes returns the structurally expanded member list computed when the
// boundary was registered: members resolving to a boundary at that time
// contribute their own members, everything else is kept verbatim. The fully
// recursive flattening lives on BoundaryForest, which also sees boundaries
// registered after this one.
func (b *Boundary) Nodes() []ID {
	return append([]ID(nil), b.nodes...)
}

func (b *Boundary) setNodes(nodes []ID) {
	b.nodes = nodes
}
