package presentation

import (
	"threatmap/internal/domain/model"
)

// ReportDTO represents a consistency check result for presentation.
type ReportDTO struct {
	Model    string   `json:"model"`
	Passed   bool     `json:"passed"`
	Findings []string `json:"findings"`
}

// ThreatDTO represents a threat for presentation.
type ThreatDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status"`
	Category     string   `json:"category"`
	Element      string   `json:"element,omitempty"`
	BaseRisk     *int     `json:"base_risk,omitempty"`
	ChildThreats []string `json:"child_threats,omitempty"`
	Mitigations  []string `json:"mitigations,omitempty"`
}

// FromDomainThreat converts a domain threat to a DTO.
func FromDomainThreat(t *model.Threat) ThreatDTO {
	dto := ThreatDTO{
		ID:          string(t.Identifier()),
		Name:        t.Name(),
		Description: t.Description(),
		Status:      t.Status().Name(),
		Category:    t.Category().Name(),
		Element:     string(t.Element()),
	}

	if risk, ok := t.BaseRisk(); ok {
		dto.BaseRisk = &risk
	}
	for _, id := range t.ChildThreatIDs() {
		dto.ChildThreats = append(dto.ChildThreats, string(id))
	}
	for _, id := range t.MitigationIDs() {
		dto.Mitigations = append(dto.Mitigations, string(id))
	}

	return dto
}

// FromDomainThreats converts a slice of domain threats to DTOs.
func FromDomainThreats(threats []*model.Threat) []ThreatDTO {
	dtos := make([]ThreatDTO, len(threats))
	for i, t := range threats {
		dtos[i] = FromDomainThreat(t)
	}
	return dtos
}

// NewReport builds a check report DTO. Findings is never nil so the JSON
// output carries an empty array rather than null.
func NewReport(modelName string, findings []string, passed bool) ReportDTO {
	if findings == nil {
		findings = []string{}
	}
	return ReportDTO{
		Model:    modelName,
		Passed:   passed,
		Findings: findings,
	}
}
