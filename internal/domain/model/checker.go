package model

import "fmt"

// Check reconciles the dual-view relationships on every registered threat
// and reports findings. For each threat, identifiers without a matching
// object are resolved against the registry and mirrored into the object
// list, then objects missing from the identifier list are mirrored back.
// Identifiers that resolve to nothing, and threats still Unmanaged, become
// findings and fail the check.
//
// Findings are diagnostics, not errors. Check mutates the threats' views in
// place and is idempotent: once all references resolve, repeated calls
// produce the same state and no further appends.
func (tm *ThreatModel) Check() ([]string, bool) {
	var findings []string
	passed := true

	for _, t := range tm.threats {
		for _, id := range t.childThreatIDs {
			if hasThreat(t.childThreats, id) {
				continue
			}
			child, ok := tm.threatByID(id)
			if !ok {
				findings = append(findings, fmt.Sprintf(
					"could not find child threat id %s referenced by parent %s", id, t.id))
				passed = false
				continue
			}
			t.childThreats = append(t.childThreats, child)
		}
		for _, child := range t.childThreats {
			if !hasID(t.childThreatIDs, child.Identifier()) {
				t.childThreatIDs = append(t.childThreatIDs, child.Identifier())
			}
		}
	}

	for _, t := range tm.threats {
		for _, id := range t.mitigationIDs {
			if hasMitigation(t.mitigations, id) {
				continue
			}
			m, ok := tm.mitigationByID(id)
			if !ok {
				findings = append(findings, fmt.Sprintf(
					"could not find mitigation id %s referenced by threat %s", id, t.id))
				passed = false
				continue
			}
			t.mitigations = append(t.mitigations, m)
		}
		for _, m := range t.mitigations {
			if !hasID(t.mitigationIDs, m.Identifier()) {
				t.mitigationIDs = append(t.mitigationIDs, m.Identifier())
			}
		}
	}

	for _, t := range tm.threats {
		if t.status == StatusUnmanaged {
			findings = append(findings, fmt.Sprintf(
				"threat %s (%s) is unmanaged", t.id, t.name))
			passed = false
		}
	}

	return findings, passed
}

func hasThreat(threats []*Threat, id ID) bool {
	for _, t := range threats {
		if t.Identifier() == id {
			return true
		}
	}
	return false
}

func hasMitigation(mitigations []*Mitigation, id ID) bool {
	for _, m := range mitigations {
		if m.Identifier() == id {
			return true
		}
	}
	return false
}

func hasID(ids []ID, id ID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
