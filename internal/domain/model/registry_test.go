package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Helper to build a threat, failing the test on builder errors.
func mkThreat(t *testing.T, name string, id ID) *Threat {
	t.Helper()
	threat, err := NewThreat(name).ID(id).Build()
	require.NoError(t, err)
	return threat
}

func TestNewThreatModel(t *testing.T) {
	tm := NewThreatModel("my model", "")
	require.NotNil(t, tm)
	require.Empty(t, tm.Elements())
	require.Empty(t, tm.Threats())
	require.Empty(t, tm.Mitigations())
	require.Contains(t, tm.String(), "my model")
}

func TestThreatModel_AddElement(t *testing.T) {
	tm := NewThreatModel("test", "")
	server := NewElement("server", "ELEMENT1", "my test server")

	err := tm.AddElement(server)

	require.NoError(t, err)
	require.True(t, tm.Contains("ELEMENT1"))

	got, err := tm.Get("ELEMENT1")
	require.NoError(t, err)
	require.Equal(t, server, got)
}

func TestThreatModel_AddElement_Nil(t *testing.T) {
	tm := NewThreatModel("test", "")

	err := tm.AddElement(nil)

	require.ErrorIs(t, err, ErrNilEntity)
}

func TestThreatModel_AddElement_Duplicate(t *testing.T) {
	tm := NewThreatModel("test", "")
	require.NoError(t, tm.AddElement(NewProcess("server", "Server", "")))

	err := tm.AddElement(NewProcess("another server", "Server", ""))

	require.ErrorIs(t, err, ErrDuplicateIdentifier)
	require.Len(t, tm.Elements(), 1)
}

func TestThreatModel_AddElement_GeneratesIdentifier(t *testing.T) {
	tm := NewThreatModel("test", "")
	server := NewProcess("server", "", "")

	require.NotEmpty(t, server.Identifier())
	require.NoError(t, tm.AddElement(server))
	require.True(t, tm.Contains(server.Identifier()))
}

func TestThreatModel_Get_NotFound(t *testing.T) {
	tm := NewThreatModel("test", "")

	_, err := tm.Get("missing")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestThreatModel_CrossNamespaceDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		first func(tm *ThreatModel) error
		then  func(tm *ThreatModel) error
	}{
		{
			name:  "threat duplicating an element",
			first: func(tm *ThreatModel) error { return tm.AddElement(NewProcess("server", "a", "")) },
			then:  func(tm *ThreatModel) error { return tm.AddThreat(mustThreat("tamper", "a")) },
		},
		{
			name:  "element duplicating a threat",
			first: func(tm *ThreatModel) error { return tm.AddThreat(mustThreat("tamper", "a")) },
			then:  func(tm *ThreatModel) error { return tm.AddElement(NewProcess("server", "a", "")) },
		},
		{
			name:  "element duplicating a mitigation",
			first: func(tm *ThreatModel) error { return tm.AddMitigation(NewMitigation("patch", "a", "")) },
			then:  func(tm *ThreatModel) error { return tm.AddElement(NewProcess("server", "a", "")) },
		},
		{
			name:  "mitigation duplicating a threat",
			first: func(tm *ThreatModel) error { return tm.AddThreat(mustThreat("tamper", "a")) },
			then:  func(tm *ThreatModel) error { return tm.AddMitigation(NewMitigation("patch", "a", "")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewThreatModel("test", "")
			require.NoError(t, tt.first(tm))
			require.ErrorIs(t, tt.then(tm), ErrDuplicateIdentifier)
		})
	}
}

func TestThreatModel_AddDataflow_MissingEndpoint(t *testing.T) {
	tm := NewThreatModel("test", "")
	require.NoError(t, tm.AddElement(NewProcess("server", "Server", "")))

	flow, err := NewDataflow("Client", "Server", "HTTP", "HTTP", "")
	require.NoError(t, err)

	err = tm.AddElement(flow)

	require.ErrorIs(t, err, ErrMissingEndpoint)
	require.False(t, tm.Contains("HTTP"))
}

func TestThreatModel_AddDataflow_AfterEndpoints(t *testing.T) {
	tm := NewThreatModel("test", "")
	require.NoError(t, tm.AddElement(NewProcess("server", "Server", "")))
	require.NoError(t, tm.AddElement(NewExternalEntity("client", "Client", "")))

	flow, err := NewDataflow("Client", "Server", "HTTP", "HTTP", "")
	require.NoError(t, err)

	require.NoError(t, tm.AddElement(flow))
	require.True(t, tm.Contains("HTTP"))
}

func TestNewDataflow_RequiresBothNodes(t *testing.T) {
	_, err := NewDataflow("", "Server", "HTTP", "", "")
	require.ErrorIs(t, err, ErrMissingFlowNodes)

	_, err = NewBidirectionalDataflow("Client", "", "HTTP", "", "")
	require.ErrorIs(t, err, ErrMissingFlowNodes)
}

func TestThreatModel_AddBoundary_UnknownParent(t *testing.T) {
	tm := NewThreatModel("test", "")
	b := NewBoundary("trust", nil, "trust", "", "nope")

	err := tm.AddElement(b)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestThreatModel_AddThreat_ResolvesKnownChildren(t *testing.T) {
	tm := NewThreatModel("test", "")
	child := mkThreat(t, "weak hashing", "T2")
	require.NoError(t, tm.AddThreat(child))

	parent, err := NewThreat("sqli").ID("T1").ChildThreatIDs("T2").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))

	require.Equal(t, []*Threat{child}, parent.ChildThreats())
}

func TestThreatModel_AddThreat_DefersUnknownChildren(t *testing.T) {
	tm := NewThreatModel("test", "")
	parent, err := NewThreat("sqli").ID("T1").ChildThreatIDs("T2").Build()
	require.NoError(t, err)

	// The sibling may be registered later; no error at this point.
	require.NoError(t, tm.AddThreat(parent))
	require.Empty(t, parent.ChildThreats())
}

func TestThreatModel_AddThreats_SkipsDuplicates(t *testing.T) {
	tm := NewThreatModel("test", "")
	first := mkThreat(t, "tamper", "T1")
	second := mkThreat(t, "spoof", "T2")

	tm.AddThreats([]*Threat{first, second})
	tm.AddThreats([]*Threat{mkThreat(t, "tamper again", "T1")})

	require.Len(t, tm.Threats(), 2)
}

func TestThreatModel_AddElements_StopsAtFirstError(t *testing.T) {
	tm := NewThreatModel("test", "")
	elements := []Element{
		NewProcess("server", "a", ""),
		NewProcess("dup", "a", ""),
		NewProcess("never added", "b", ""),
	}

	err := tm.AddElements(elements)

	require.ErrorIs(t, err, ErrDuplicateIdentifier)
	require.False(t, tm.Contains("b"))
}

func TestThreatModel_ThreatBearingElements_ExcludesBoundaries(t *testing.T) {
	tm := NewThreatModel("test", "")
	require.NoError(t, tm.AddElement(NewProcess("webapp", "webapp", "")))
	require.NoError(t, tm.AddElement(NewDatastore("db", "db", "")))
	require.NoError(t, tm.AddElement(NewBoundary("trust", []ID{"webapp", "db"}, "trust", "", "")))

	bearing := tm.ThreatBearingElements()

	require.Len(t, bearing, 2)
	for _, e := range bearing {
		require.NotEqual(t, KindBoundary, e.Kind())
	}
}

func TestThreatModel_RootThreats(t *testing.T) {
	tm := NewThreatModel("test", "")
	child := mkThreat(t, "child", "T2")
	require.NoError(t, tm.AddThreat(child))

	parent, err := NewThreat("parent").ID("T1").ChildThreatIDs("T2").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))

	_, _ = tm.Check()

	roots := tm.RootThreats()
	require.Len(t, roots, 1)
	require.Equal(t, ID("T1"), roots[0].Identifier())
}

// mustThreat is for table entries where *testing.T is out of reach.
func mustThreat(name string, id ID) *Threat {
	threat, err := NewThreat(name).ID(id).Build()
	if err != nil {
		panic(err)
	}
	return threat
}
