// Package enumeration provides pluggable threat generation methods.
//
// A Method reads the current element collection and proposes new threats.
// Proposed threats are handed to ThreatModel.AddThreats, which skips
// duplicates, so re-running a method against an already populated model is
// safe and produces no duplicate threats.
package enumeration

import "threatmap/internal/domain/model"

// Method generates proposed threats for a set of diagram elements.
type Method interface {
	// Generate proposes new threats for the given elements. The existing
	// threats are provided so methods can take prior findings into
	// account; naive methods may ignore them. Boundaries are not
	// threat-bearing and are excluded from elements by the caller.
	Generate(existing []*model.Threat, elements []model.Element) []*model.Threat
}
