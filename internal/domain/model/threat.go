package model

import (
	"fmt"
	"strings"
)

// ThreatStatus describes the management state of a threat. A model only
// passes its consistency check once no threat remains Unmanaged.
type ThreatStatus int

const (
	StatusUnmanaged ThreatStatus = iota
	StatusManagedInform
	StatusManagedTransferred
	StatusManagedAvoided
	StatusManagedAccepted
	StatusManagedMitigated
	StatusManagedPartiallyMitigated
	StatusOutOfScope
)

var statusNames = map[ThreatStatus]string{
	StatusUnmanaged:                 "UNMANAGED",
	StatusManagedInform:             "MANAGED_INFORM",
	StatusManagedTransferred:        "MANAGED_TRANSFERRED",
	StatusManagedAvoided:            "MANAGED_AVOIDED",
	StatusManagedAccepted:           "MANAGED_ACCEPTED",
	StatusManagedMitigated:          "MANAGED_MITIGATED",
	StatusManagedPartiallyMitigated: "MANAGED_PARTIALLY_MITIGATED",
	StatusOutOfScope:                "OUT_OF_SCOPE",
}

var statusLabels = map[ThreatStatus]string{
	StatusUnmanaged:                 "Unmanaged",
	StatusManagedInform:             "Managed: Inform",
	StatusManagedTransferred:        "Managed: Transferred",
	StatusManagedAvoided:            "Managed: Avoided",
	StatusManagedAccepted:           "Managed: Accepted",
	StatusManagedMitigated:          "Managed: Mitigated",
	StatusManagedPartiallyMitigated: "Managed: Partially Mitigated",
	StatusOutOfScope:                "Out of scope",
}

// Name returns the serialized form used in model files, e.g. "MANAGED_INFORM".
func (s ThreatStatus) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNMANAGED"
}

// String returns the human-readable label, e.g. "Managed: Inform".
func (s ThreatStatus) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unmanaged"
}

// ParseThreatStatus accepts both serialized names ("MANAGED_ACCEPTED") and
// human forms ("Managed: Accepted", "managed accepted"), case-insensitively.
func ParseThreatStatus(s string) (ThreatStatus, error) {
	norm := normalizeEnum(s)
	for status, name := range statusNames {
		if norm == name {
			return status, nil
		}
	}
	return StatusUnmanaged, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// ThreatCategory is the high-level STRIDE classification of a threat.
type ThreatCategory int

const (
	CategoryUnknown ThreatCategory = iota
	CategorySpoofing
	CategoryTampering
	CategoryRepudiation
	CategoryInformationDisclosure
	CategoryDenialOfService
	CategoryPrivilegeEscalation
)

var categoryNames = map[ThreatCategory]string{
	CategoryUnknown:               "UNKNOWN",
	CategorySpoofing:              "SPOOFING",
	CategoryTampering:             "TAMPERING",
	CategoryRepudiation:           "REPUDIATION",
	CategoryInformationDisclosure: "INFORMATION_DISCLOSURE",
	CategoryDenialOfService:       "DENIAL_OF_SERVICE",
	CategoryPrivilegeEscalation:   "PRIVILEGE_ESCALATION",
}

var categoryLabels = map[ThreatCategory]string{
	CategoryUnknown:               "Unknown",
	CategorySpoofing:              "Spoofing",
	CategoryTampering:             "Tampering",
	CategoryRepudiation:           "Repudiation",
	CategoryInformationDisclosure: "Information Disclosure",
	CategoryDenialOfService:       "Denial of Service",
	CategoryPrivilegeEscalation:   "Privilege Escalation",
}

// Name returns the serialized form, e.g. "INFORMATION_DISCLOSURE".
func (c ThreatCategory) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// String returns the human-readable label, e.g. "Information Disclosure".
func (c ThreatCategory) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "Unknown"
}

// ParseThreatCategory accepts serialized names and human labels,
// case-insensitively.
func ParseThreatCategory(s string) (ThreatCategory, error) {
	norm := normalizeEnum(s)
	for category, name := range categoryNames {
		if norm == name {
			return category, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// OrdinalScore is the ordinal scale used for impact and exploitability.
type OrdinalScore int

const (
	ScoreNone OrdinalScore = iota
	ScoreVeryLow
	ScoreLow
	ScoreMedium
	ScoreHigh
	ScoreCritical
)

var scoreNames = map[OrdinalScore]string{
	ScoreNone:     "NONE",
	ScoreVeryLow:  "VERY_LOW",
	ScoreLow:      "LOW",
	ScoreMedium:   "MEDIUM",
	ScoreHigh:     "HIGH",
	ScoreCritical: "CRITICAL",
}

// Name returns the serialized form, e.g. "VERY_LOW".
func (o OrdinalScore) Name() string {
	if name, ok := scoreNames[o]; ok {
		return name
	}
	return "NONE"
}

// Value returns the numeric weight (0 for None through 5 for Critical).
func (o OrdinalScore) Value() int {
	return int(o)
}

// ParseOrdinalScore accepts serialized names and human forms ("very low"),
// case-insensitively.
func ParseOrdinalScore(s string) (OrdinalScore, error) {
	norm := normalizeEnum(s)
	for score, name := range scoreNames {
		if norm == name {
			return score, nil
		}
	}
	return ScoreNone, fmt.Errorf("%w: %q", ErrUnknownScore, s)
}

// normalizeEnum maps "Managed: Accepted", "managed accepted", and
// "MANAGED_ACCEPTED" onto the same lookup key.
func normalizeEnum(s string) string {
	s = strings.ToUpper(s)
	s = strings.NewReplacer(":", " ", "-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), "_")
}

// Threat is a recorded possible attack against a DFD element. Child threats
// (attacks that become possible once this one succeeds) and mitigations are
// each tracked in two views: a resolved object list and an identifier list.
// Either view may be populated at construction; the registry resolves what
// it can at add time and Check reconciles the rest.
type Threat struct {
	id                  ID
	name                string
	description         string
	status              ThreatStatus
	category            ThreatCategory
	baseImpact          *OrdinalScore
	baseExploitability  *OrdinalScore
	childThreats        []*Threat
	childThreatIDs      []ID
	mitigations         []*Mitigation
	mitigationIDs       []ID
	dfdElement          ID
}

// Identifier returns the threat's unique identifier.
func (t *Threat) Identifier() ID {
	return t.id
}

// Name returns the threat's short display name.
func (t *Threat) Name() string {
	return t.name
}

// Description returns the optional longer description.
func (t *Threat) Description() string {
	return t.description
}

// Status returns the threat's management status.
func (t *Threat) Status() ThreatStatus {
	return t.status
}

// SetStatus updates the threat's management status.
func (t *Threat) SetStatus(s ThreatStatus) {
	t.status = s
}

// Category returns the threat's STRIDE category.
func (t *Threat) Category() ThreatCategory {
	return t.category
}

// BaseImpact returns the pre-mitigation impact score, if one was assigned.
func (t *Threat) BaseImpact() (OrdinalScore, bool) {
	if t.baseImpact == nil {
		return ScoreNone, false
	}
	return *t.baseImpact, true
}

// BaseExploitability returns the ease-of-exploitation score, if assigned.
func (t *Threat) BaseExploitability() (OrdinalScore, bool) {
	if t.baseExploitability == nil {
		return ScoreNone, false
	}
	return *t.baseExploitability, true
}

// BaseRisk returns impact times exploitability. It is undefined (ok=false)
// unless both scores are assigned.
func (t *Threat) BaseRisk() (int, bool) {
	if t.baseImpact == nil || t.baseExploitability == nil {
		return 0, false
	}
	return t.baseImpact.Value() * t.baseExploitability.Value(), true
}

// ChildThreats returns the resolved child threat objects.
func (t *Threat) ChildThreats() []*Threat {
	return append([]*Threat(nil), t.childThreats...)
}

// ChildThreatIDs returns the child threat identifier list.
func (t *Threat) ChildThreatIDs() []ID {
	return append([]ID(nil), t.childThreatIDs...)
}

// Mitigations returns the resolved mitigation objects.
func (t *Threat) Mitigations() []*Mitigation {
	return append([]*Mitigation(nil), t.mitigations...)
}

// MitigationIDs returns the mitigation identifier list.
func (t *Threat) MitigationIDs() []ID {
	return append([]ID(nil), t.mitigationIDs...)
}

// Element returns the ID of the DFD element this threat concerns, or ""
// when the threat is not bound to one.
func (t *Threat) Element() ID {
	return t.dfdElement
}

// AddChildThreat appends a resolved child threat. The identifier view is
// mirrored on the next Check.
func (t *Threat) AddChildThreat(child *Threat) {
	t.childThreats = append(t.childThreats, child)
}

// AddMitigation appends a resolved mitigation. The identifier view is
// mirrored on the next Check.
func (t *Threat) AddMitigation(m *Mitigation) {
	t.mitigations = append(t.mitigations, m)
}

func (t *Threat) String() string {
	return fmt.Sprintf("<Threat %s: %s>", t.id, t.name)
}

// ThreatBuilder provides a fluent API for constructing threats.
type ThreatBuilder struct {
	threat Threat
}

// NewThreat creates a builder for a threat with the given name. Status
// defaults to Unmanaged and category to Unknown.
func NewThreat(name string) *ThreatBuilder {
	return &ThreatBuilder{
		threat: Threat{
			name:     name,
			status:   StatusUnmanaged,
			category: CategoryUnknown,
		},
	}
}

// ID sets the threat identifier. When absent, one is generated at Build.
func (b *ThreatBuilder) ID(id ID) *ThreatBuilder {
	b.threat.id = id
	return b
}

// Description sets the longer description.
func (b *ThreatBuilder) Description(d string) *ThreatBuilder {
	b.threat.description = d
	return b
}

// Status sets the management status.
func (b *ThreatBuilder) Status(s ThreatStatus) *ThreatBuilder {
	b.threat.status = s
	return b
}

// Category sets the STRIDE category.
func (b *ThreatBuilder) Category(c ThreatCategory) *ThreatBuilder {
	b.threat.category = c
	return b
}

// Impact sets the pre-mitigation impact score.
func (b *ThreatBuilder) Impact(s OrdinalScore) *ThreatBuilder {
	score := s
	b.threat.baseImpact = &score
	return b
}

// Exploitability sets the ease-of-exploitation score.
func (b *ThreatBuilder) Exploitability(s OrdinalScore) *ThreatBuilder {
	score := s
	b.threat.baseExploitability = &score
	return b
}

// ChildThreats sets the resolved child threat objects.
func (b *ThreatBuilder) ChildThreats(ts ...*Threat) *ThreatBuilder {
	b.threat.childThreats = append(b.threat.childThreats, ts...)
	return b
}

// ChildThreatIDs sets child threats by identifier, for references to
// threats that may not exist yet.
func (b *ThreatBuilder) ChildThreatIDs(ids ...ID) *ThreatBuilder {
	b.threat.childThreatIDs = append(b.threat.childThreatIDs, ids...)
	return b
}

// Mitigations sets the resolved mitigation objects.
func (b *ThreatBuilder) Mitigations(ms ...*Mitigation) *ThreatBuilder {
	b.threat.mitigations = append(b.threat.mitigations, ms...)
	return b
}

// MitigationIDs sets mitigations by identifier.
func (b *ThreatBuilder) MitigationIDs(ids ...ID) *ThreatBuilder {
	b.threat.mitigationIDs = append(b.threat.mitigationIDs, ids...)
	return b
}

// Element binds the threat to a DFD element by identifier.
func (b *ThreatBuilder) Element(id ID) *ThreatBuilder {
	b.threat.dfdElement = id
	return b
}

// Build validates the threat and fills derived fields: a generated ID when
// none was set, and identifier lists mirrored from any object lists given.
func (b *ThreatBuilder) Build() (*Threat, error) {
	if b.threat.name == "" {
		return nil, ErrEmptyName
	}
	t := b.threat
	t.id = orID(t.id)
	t.childThreats = append([]*Threat(nil), t.childThreats...)
	t.childThreatIDs = append([]ID(nil), t.childThreatIDs...)
	t.mitigations = append([]*Mitigation(nil), t.mitigations...)
	t.mitigationIDs = append([]ID(nil), t.mitigationIDs...)
	if len(t.childThreatIDs) == 0 {
		for _, child := range t.childThreats {
			t.childThreatIDs = append(t.childThreatIDs, child.Identifier())
		}
	}
	if len(t.mitigationIDs) == 0 {
		for _, m := range t.mitigations {
			t.mitigationIDs = append(t.mitigationIDs, m.Identifier())
		}
	}
	return &t, nil
}
