package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck_ResolvesForwardChildReference(t *testing.T) {
	tm := NewThreatModel("test", "")

	parent, err := NewThreat("sqli").ID("T1").Status(StatusManagedAccepted).
		ChildThreatIDs("T2").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))

	child, err := NewThreat("weak hashing").ID("T2").Status(StatusManagedAccepted).Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(child))

	// T2 was added after T1 referenced it; only Check resolves the link.
	require.Empty(t, parent.ChildThreats())

	findings, passed := tm.Check()

	require.True(t, passed)
	require.Empty(t, findings)
	require.Equal(t, []*Threat{child}, parent.ChildThreats())
	require.Equal(t, []ID{"T2"}, parent.ChildThreatIDs())
}

func TestCheck_Idempotent(t *testing.T) {
	tm := NewThreatModel("test", "")

	parent, err := NewThreat("sqli").ID("T1").Status(StatusManagedAccepted).
		ChildThreatIDs("T2").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))

	child, err := NewThreat("weak hashing").ID("T2").Status(StatusManagedAccepted).Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(child))

	_, passed := tm.Check()
	require.True(t, passed)
	findings, passed := tm.Check()

	require.True(t, passed)
	require.Empty(t, findings)
	require.Len(t, parent.ChildThreats(), 1)
	require.Equal(t, []ID{"T2"}, parent.ChildThreatIDs())
}

func TestCheck_MirrorsObjectsIntoIDList(t *testing.T) {
	tm := NewThreatModel("test", "")

	child, err := NewThreat("weak hashing").ID("T2").Status(StatusManagedAccepted).Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(child))

	parent, err := NewThreat("sqli").ID("T1").Status(StatusManagedAccepted).Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))
	parent.AddChildThreat(child)
	require.Empty(t, parent.ChildThreatIDs())

	_, passed := tm.Check()

	require.True(t, passed)
	require.Equal(t, []ID{"T2"}, parent.ChildThreatIDs())
}

func TestCheck_DanglingChildReference(t *testing.T) {
	tm := NewThreatModel("test", "")

	parent, err := NewThreat("sqli").ID("T1").Status(StatusManagedAccepted).
		ChildThreatIDs("T3").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))

	findings, passed := tm.Check()

	require.False(t, passed)
	require.Len(t, findings, 1)
	require.Contains(t, findings[0], "could not find child threat id T3")
	require.Contains(t, findings[0], "T1")

	// Re-reports the unresolved id, nothing more.
	findings, passed = tm.Check()
	require.False(t, passed)
	require.Len(t, findings, 1)
}

func TestCheck_ReconcilesMitigations(t *testing.T) {
	tm := NewThreatModel("test", "")
	patch := NewMitigation("apply patch", "M1", "")
	require.NoError(t, tm.AddMitigation(patch))

	threat, err := NewThreat("sqli").ID("T1").Status(StatusManagedMitigated).
		MitigationIDs("M1").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(threat))

	findings, passed := tm.Check()

	require.True(t, passed)
	require.Empty(t, findings)
	require.Equal(t, []*Mitigation{patch}, threat.Mitigations())
	require.Equal(t, []ID{"M1"}, threat.MitigationIDs())
}

func TestCheck_DanglingMitigationReference(t *testing.T) {
	tm := NewThreatModel("test", "")

	threat, err := NewThreat("sqli").ID("T1").Status(StatusManagedMitigated).
		MitigationIDs("M9").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(threat))

	findings, passed := tm.Check()

	require.False(t, passed)
	require.Len(t, findings, 1)
	require.Contains(t, findings[0], "could not find mitigation id M9")
}

func TestCheck_UnmanagedThreatFails(t *testing.T) {
	tm := NewThreatModel("test", "")

	threat, err := NewThreat("sqli").ID("T1").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(threat))

	findings, passed := tm.Check()

	require.False(t, passed)
	require.Len(t, findings, 1)
	require.Contains(t, findings[0], "unmanaged")
}

func TestCheck_UnmanagedGatesEvenWhenReferencesResolve(t *testing.T) {
	tm := NewThreatModel("test", "")

	child, err := NewThreat("child").ID("T2").Status(StatusManagedAvoided).Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(child))

	parent, err := NewThreat("parent").ID("T1").ChildThreatIDs("T2").Build()
	require.NoError(t, err)
	require.NoError(t, tm.AddThreat(parent))

	findings, passed := tm.Check()

	require.False(t, passed)
	require.Len(t, findings, 1)
	require.Contains(t, findings[0], "T1")
	// Reconciliation still happened despite the failure.
	require.Equal(t, []*Threat{child}, parent.ChildThreats())
}

func TestCheck_EmptyModelPasses(t *testing.T) {
	tm := NewThreatModel("test", "")

	findings, passed := tm.Check()

	require.True(t, passed)
	require.Empty(t, findings)
}
