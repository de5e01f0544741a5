package model

// Dataflow is an edge between two element identifiers, either directed
// (first to second) or bidirectional. Both endpoints must already be
// registered before a dataflow can be added to a ThreatModel.
type Dataflow struct {
	id          ID
	name        string
	description string
	firstID     ID
	secondID    ID
	kind        Kind
}

func newDataflow(kind Kind, firstID, secondID ID, name string, id ID, description string) (*Dataflow, error) {
	if firstID == "" || secondID == "" {
		return nil, ErrMissingFlowNodes
	}
	return &Dataflow{
		id:          orID(id),
		name:        name,
		description: description,
		firstID:     firstID,
		secondID:    secondID,
		kind:        kind,
	}, nil
}

// NewDataflow creates a directed edge from firstID to secondID.
func NewDataflow(firstID, secondID ID, name string, id ID, description string) (*Dataflow, error) {
	return newDataflow(KindDataflow, firstID, secondID, name, id, description)
}

// NewBidirectionalDataflow creates a mutual edge between firstID and secondID.
func NewBidirectionalDataflow(firstID, secondID ID, name string, id ID, description string) (*Dataflow, error) {
	return newDataflow(KindBidirectionalDataflow, firstID, secondID, name, id, description)
}

// Identifier returns the dataflow's unique identifier.
func (d *Dataflow) Identifier() ID {
	return d.id
}

// Name returns the dataflow's display name.
func (d *Dataflow) Name() string {
	return d.name
}

// Description returns the optional longer description.
func (d *Dataflow) Description() string {
	return d.description
}

// Kind returns KindDataflow or KindBidirectionalDataflow.
func (d *Dataflow) Kind() Kind {
	return d.kind
}

// FirstID returns the source endpoint identifier.
func (d *Dataflow) FirstID() ID {
	return d.firstID
}

// SecondID returns the destination endpoint identifier.
func (d *Dataflow) SecondID() ID {
	return d.secondID
}

// Bidirectional reports whether the flow runs in both directions.
func (d *Dataflow) Bidirectional() bool {
	return d.kind == KindBidirectionalDataflow
}
