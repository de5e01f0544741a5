package modelfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"threatmap/internal/domain/model"
)

const simpleModel = `
name: Simple Web App
description: A small three-tier system
nodes:
  - id: frontend
    name: Web application frontend
    type: Process
  - id: backend
    name: Web application backend
    type: Process
  - id: db
    name: db
    type: Datastore
  - id: user
    name: User
    type: ExternalEntity
dataflows:
  - id: HTTP
    name: HTTP
    first_node: user
    second_node: frontend
  - id: SQL
    name: SQL
    first_node: backend
    second_node: db
    bidirectional: true
boundaries:
  - id: trust
    name: trust
    members:
      - frontend
      - backend
      - db
threats:
  - id: THREAT1
    name: SQLi in web application
    description: Attacker can dump the user table
    status: MANAGED_MITIGATED
    base_impact: MEDIUM
    base_exploitability: MEDIUM
    threat_category: TAMPERING
    dfd_element: backend
    child_threats:
      - THREAT2
    mitigations:
      - M1
  - id: THREAT2
    name: Weak password hashing used
    status: MANAGED_ACCEPTED
    base_impact: MEDIUM
    base_exploitability: MEDIUM
mitigations:
  - id: M1
    name: Parameterized queries
`

func loadSimple(t *testing.T) *model.ThreatModel {
	t.Helper()
	doc, err := Load(strings.NewReader(simpleModel))
	require.NoError(t, err)
	tm, err := BuildModel(doc)
	require.NoError(t, err)
	return tm
}

func TestLoad_SimpleModel(t *testing.T) {
	tm := loadSimple(t)

	require.Equal(t, "Simple Web App", tm.Name())
	require.Len(t, tm.Elements(), 7) // 4 nodes + 2 flows + 1 boundary
	require.Len(t, tm.Boundaries(), 1)
	require.Len(t, tm.Threats(), 2)
	require.Len(t, tm.Mitigations(), 1)
}

func TestLoad_ThreatFields(t *testing.T) {
	tm := loadSimple(t)

	entity, err := tm.Get("THREAT1")
	require.NoError(t, err)
	threat, ok := entity.(*model.Threat)
	require.True(t, ok)

	require.Equal(t, model.StatusManagedMitigated, threat.Status())
	require.Equal(t, model.CategoryTampering, threat.Category())
	require.Equal(t, model.ID("backend"), threat.Element())
	require.Equal(t, []model.ID{"THREAT2"}, threat.ChildThreatIDs())

	risk, ok := threat.BaseRisk()
	require.True(t, ok)
	require.Equal(t, 9, risk)
}

func TestLoad_ChecksCleanly(t *testing.T) {
	tm := loadSimple(t)

	findings, passed := tm.Check()

	require.True(t, passed)
	require.Empty(t, findings)
}

func TestBuildModel_InvalidNodeType(t *testing.T) {
	doc, err := Load(strings.NewReader(`
nodes:
  - id: x
    name: x
    type: Frobnicator
`))
	require.NoError(t, err)

	_, err = BuildModel(doc)

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid type for node")
}

func TestBuildModel_InvalidStatus(t *testing.T) {
	doc, err := Load(strings.NewReader(`
threats:
  - id: T1
    name: bad status
    status: sort of handled
`))
	require.NoError(t, err)

	_, err = BuildModel(doc)

	require.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestBuildModel_DataflowBeforeEndpoints(t *testing.T) {
	doc, err := Load(strings.NewReader(`
dataflows:
  - id: HTTP
    name: HTTP
    first_node: nowhere
    second_node: also nowhere
`))
	require.NoError(t, err)

	_, err = BuildModel(doc)

	require.ErrorIs(t, err, model.ErrMissingEndpoint)
}

func TestSave_RoundTrip(t *testing.T) {
	tm := loadSimple(t)

	var buf bytes.Buffer
	require.NoError(t, Save(tm, &buf))

	doc, err := Load(&buf)
	require.NoError(t, err)
	reloaded, err := BuildModel(doc)
	require.NoError(t, err)

	require.Equal(t, identifiers(tm), identifiers(reloaded))

	boundary, err := reloaded.Get("trust")
	require.NoError(t, err)
	require.Equal(t,
		[]model.ID{"frontend", "backend", "db"},
		boundary.(*model.Boundary).Members())

	entity, err := reloaded.Get("THREAT1")
	require.NoError(t, err)
	threat := entity.(*model.Threat)
	require.Equal(t, model.StatusManagedMitigated, threat.Status())
	require.Equal(t, []model.ID{"M1"}, threat.MitigationIDs())
}

func TestSave_Stable(t *testing.T) {
	tm := loadSimple(t)

	var first, second bytes.Buffer
	require.NoError(t, Save(tm, &first))
	require.NoError(t, Save(tm, &second))

	require.Equal(t, first.String(), second.String())
}

func TestSaveFile_LoadModel(t *testing.T) {
	tm := loadSimple(t)
	path := t.TempDir() + "/model.yaml"

	require.NoError(t, SaveFile(tm, path))

	reloaded, err := LoadModel(path)
	require.NoError(t, err)
	require.Equal(t, identifiers(tm), identifiers(reloaded))
}

// identifiers collects every entity ID in a stable order.
func identifiers(tm *model.ThreatModel) []model.ID {
	var ids []model.ID
	for _, e := range tm.Elements() {
		ids = append(ids, e.Identifier())
	}
	for _, t := range tm.Threats() {
		ids = append(ids, t.Identifier())
	}
	for _, m := range tm.Mitigations() {
		ids = append(ids, m.Identifier())
	}
	return ids
}
