package model

import "errors"

// Registry errors
var (
	// ErrDuplicateIdentifier is returned when an entity's ID already exists
	// anywhere in the registry's flat namespace.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrNotFound is returned by lookups when an ID resolves to nothing.
	ErrNotFound = errors.New("identifier not found")

	// ErrMissingEndpoint is returned when a dataflow references an element
	// that has not been registered yet.
	ErrMissingEndpoint = errors.New("dataflow endpoint not registered")

	// ErrNilEntity is returned when nil is passed to an Add method.
	ErrNilEntity = errors.New("entity cannot be nil")
)

// Construction errors
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrMissingFlowNodes = errors.New("two nodes required to define a dataflow")
	ErrUnknownStatus    = errors.New("unknown threat status")
	ErrUnknownCategory  = errors.New("unknown threat category")
	ErrUnknownScore     = errors.New("unknown ordinal score")
)
