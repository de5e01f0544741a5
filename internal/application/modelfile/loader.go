package modelfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"threatmap/internal/domain/model"
	"threatmap/internal/log"
)

// Document is the plain-record shape of a threat model file.
type Document struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Nodes       []NodeRecord       `yaml:"nodes,omitempty"`
	Dataflows   []DataflowRecord   `yaml:"dataflows,omitempty"`
	Boundaries  []BoundaryRecord   `yaml:"boundaries,omitempty"`
	Threats     []ThreatRecord     `yaml:"threats,omitempty"`
	Mitigations []MitigationRecord `yaml:"mitigations,omitempty"`
}

// NodeRecord holds a plain diagram node.
type NodeRecord struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// DataflowRecord holds a directed or bidirectional edge.
type DataflowRecord struct {
	ID            string `yaml:"id,omitempty"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description,omitempty"`
	FirstNode     string `yaml:"first_node"`
	SecondNode    string `yaml:"second_node"`
	Bidirectional bool   `yaml:"bidirectional,omitempty"`
}

// BoundaryRecord holds a trust boundary and its member references.
type BoundaryRecord struct {
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Members     []string `yaml:"members"`
	Parent      string   `yaml:"parent,omitempty"`
}

// ThreatRecord holds a threat; child threats and mitigations are referenced
// by identifier only.
type ThreatRecord struct {
	ID                 string   `yaml:"id,omitempty"`
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description,omitempty"`
	Status             string   `yaml:"status,omitempty"`
	BaseImpact         string   `yaml:"base_impact,omitempty"`
	BaseExploitability string   `yaml:"base_exploitability,omitempty"`
	ThreatCategory     string   `yaml:"threat_category,omitempty"`
	DFDElement         string   `yaml:"dfd_element,omitempty"`
	ChildThreats       []string `yaml:"child_threats,omitempty"`
	Mitigations        []string `yaml:"mitigations,omitempty"`
}

// MitigationRecord holds a mitigation.
type MitigationRecord struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// nodeDispatch maps serialized type names onto node constructors.
var nodeDispatch = map[string]func(name string, id model.ID, description string) *model.Node{
	"Element":        model.NewElement,
	"Process":        model.NewProcess,
	"ExternalEntity": model.NewExternalEntity,
	"Datastore":      model.NewDatastore,
}

// Load parses a threat model document.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}
	return &doc, nil
}

// LoadFile parses the threat model document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is a user-supplied model file
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// BuildModel converts a document into a populated registry. Records are
// registered in dependency-safe order: nodes, then the dataflows connecting
// them, then boundaries, then mitigations, then threats. Threat-to-threat
// references are left to the checker.
func BuildModel(doc *Document) (*model.ThreatModel, error) {
	tm := model.NewThreatModel(doc.Name, doc.Description)

	for _, node := range doc.Nodes {
		construct, ok := nodeDispatch[node.Type]
		if !ok {
			return nil, fmt.Errorf("invalid type for node %q: %s", node.Name, node.Type)
		}
		if err := tm.AddElement(construct(node.Name, model.ID(node.ID), node.Description)); err != nil {
			return nil, fmt.Errorf("adding node %q: %w", node.Name, err)
		}
	}

	for _, flow := range doc.Dataflows {
		var (
			df  *model.Dataflow
			err error
		)
		first, second := model.ID(flow.FirstNode), model.ID(flow.SecondNode)
		if flow.Bidirectional {
			df, err = model.NewBidirectionalDataflow(first, second, flow.Name, model.ID(flow.ID), flow.Description)
		} else {
			df, err = model.NewDataflow(first, second, flow.Name, model.ID(flow.ID), flow.Description)
		}
		if err != nil {
			return nil, fmt.Errorf("building dataflow %q: %w", flow.Name, err)
		}
		if err := tm.AddElement(df); err != nil {
			return nil, fmt.Errorf("adding dataflow %q: %w", flow.Name, err)
		}
	}

	for _, boundary := range doc.Boundaries {
		members := make([]model.ID, len(boundary.Members))
		for i, member := range boundary.Members {
			members[i] = model.ID(member)
		}
		b := model.NewBoundary(boundary.Name, members, model.ID(boundary.ID),
			boundary.Description, model.ID(boundary.Parent))
		if err := tm.AddElement(b); err != nil {
			return nil, fmt.Errorf("adding boundary %q: %w", boundary.Name, err)
		}
	}

	for _, mitigation := range doc.Mitigations {
		m := model.NewMitigation(mitigation.Name, model.ID(mitigation.ID), mitigation.Description)
		if err := tm.AddMitigation(m); err != nil {
			return nil, fmt.Errorf("adding mitigation %q: %w", mitigation.Name, err)
		}
	}

	for _, record := range doc.Threats {
		t, err := buildThreat(record)
		if err != nil {
			return nil, err
		}
		if err := tm.AddThreat(t); err != nil {
			return nil, fmt.Errorf("adding threat %q: %w", record.Name, err)
		}
	}

	log.Debug(log.CatFile, "model built",
		"elements", len(tm.Elements()),
		"threats", len(tm.Threats()),
		"mitigations", len(tm.Mitigations()))
	return tm, nil
}

func buildThreat(record ThreatRecord) (*model.Threat, error) {
	builder := model.NewThreat(record.Name).
		ID(model.ID(record.ID)).
		Description(record.Description).
		Element(model.ID(record.DFDElement))

	if record.Status != "" {
		status, err := model.ParseThreatStatus(record.Status)
		if err != nil {
			return nil, fmt.Errorf("threat %q: %w", record.Name, err)
		}
		builder.Status(status)
	}
	if record.ThreatCategory != "" {
		category, err := model.ParseThreatCategory(record.ThreatCategory)
		if err != nil {
			return nil, fmt.Errorf("threat %q: %w", record.Name, err)
		}
		builder.Category(category)
	}
	if record.BaseImpact != "" {
		score, err := model.ParseOrdinalScore(record.BaseImpact)
		if err != nil {
			return nil, fmt.Errorf("threat %q: %w", record.Name, err)
		}
		builder.Impact(score)
	}
	if record.BaseExploitability != "" {
		score, err := model.ParseOrdinalScore(record.BaseExploitability)
		if err != nil {
			return nil, fmt.Errorf("threat %q: %w", record.Name, err)
		}
		builder.Exploitability(score)
	}
	for _, id := range record.ChildThreats {
		builder.ChildThreatIDs(model.ID(id))
	}
	for _, id := range record.Mitigations {
		builder.MitigationIDs(model.ID(id))
	}

	return builder.Build()
}

// LoadModel is the common load path: parse the file at path and build a
// registry from it.
func LoadModel(path string) (*model.ThreatModel, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildModel(doc)
}
