package model

// Kind enumerates the closed set of element variants. The set is fixed:
// rendering metadata (shape, fill) is resolved per kind with a single
// switch at the rendering boundary rather than through virtual dispatch.
type Kind int

const (
	// KindGeneric is an untyped diagram node.
	KindGeneric Kind = iota
	KindProcess
	KindExternalEntity
	KindDatastore
	KindDataflow
	KindBidirectionalDataflow
	KindBoundary
)

// String returns the serialized type name used in model files.
func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "Element"
	case KindProcess:
		return "Process"
	case KindExternalEntity:
		return "ExternalEntity"
	case KindDatastore:
		return "Datastore"
	case KindDataflow:
		return "Dataflow"
	case KindBidirectionalDataflow:
		return "BidirectionalDataflow"
	case KindBoundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}

// Entity is anything addressable by ID within a threat model: elements,
// threats, and mitigations.
type Entity interface {
	Identifier() ID
}

// Element is a node, edge, or boundary participating in the data-flow
// diagram. The concrete types are Node, Dataflow, and Boundary.
type Element interface {
	Entity
	Name() string
	Description() string
	Kind() Kind
}

// Compile-time checks that the variant set implements Element.
var (
	_ Element = (*Node)(nil)
	_ Element = (*Dataflow)(nil)
	_ Element = (*Boundary)(nil)
)

// Node is a plain diagram node: a process, external entity, datastore, or
// generic element.
type Node struct {
	id          ID
	name        string
	description string
	kind        Kind
}

func newNode(kind Kind, name string, id ID, description string) *Node {
	return &Node{
		id:          orID(id),
		name:        name,
		description: description,
		kind:        kind,
	}
}

// NewElement creates a generic diagram node. An empty id is replaced with a
// generated one.
func NewElement(name string, id ID, description string) *Node {
	return newNode(KindGeneric, name, id, description)
}

// NewProcess creates a process node.
func NewProcess(name string, id ID, description string) *Node {
	return newNode(KindProcess, name, id, description)
}

// NewExternalEntity creates an external entity node.
func NewExternalEntity(name string, id ID, description string) *Node {
	return newNode(KindExternalEntity, name, id, description)
}

// NewDatastore creates a datastore node.
func NewDatastore(name string, id ID, description string) *Node {
	return newNode(KindDatastore, name, id, description)
}

// Identifier returns the node's unique identifier.
func (n *Node) Identifier() ID {
	return n.id
}

// Name returns the node's display name.
func (n *Node) Name() string {
	return n.name
}

// Description returns the optional longer description.
func (n *Node) Description() string {
	return n.description
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind {
	return n.kind
}
