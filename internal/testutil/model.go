// Package testutil provides shared model fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"threatmap/internal/domain/model"
)

// ThreeTierModel builds the canonical web shop fixture: a user talking to a
// frontend, a backend talking to a database over a bidirectional flow, the
// frontend and backend inside a webapp boundary nested in a trust boundary.
func ThreeTierModel(t *testing.T) *model.ThreatModel {
	t.Helper()

	tm := model.NewThreatModel("shop", "")
	require.NoError(t, tm.AddElement(model.NewProcess("frontend", "frontend", "")))
	require.NoError(t, tm.AddElement(model.NewProcess("backend", "backend", "")))
	require.NoError(t, tm.AddElement(model.NewDatastore("db", "db", "")))
	require.NoError(t, tm.AddElement(model.NewExternalEntity("user", "user", "")))

	flow, err := model.NewDataflow("user", "frontend", "request", "request", "")
	require.NoError(t, err)
	require.NoError(t, tm.AddElement(flow))

	sql, err := model.NewBidirectionalDataflow("backend", "db", "sql", "sql", "")
	require.NoError(t, err)
	require.NoError(t, tm.AddElement(sql))

	require.NoError(t, tm.AddElement(model.NewBoundary("webapp", []model.ID{"frontend", "backend"}, "webapp", "", "")))
	require.NoError(t, tm.AddElement(model.NewBoundary("trust", []model.ID{"webapp", "db"}, "trust", "", "")))
	return tm
}

// MustThreat builds a threat or fails the test.
func MustThreat(t *testing.T, name string, id model.ID) *model.Threat {
	t.Helper()

	threat, err := model.NewThreat(name).ID(id).Build()
	require.NoError(t, err)
	return threat
}
