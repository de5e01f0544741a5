package enumeration

import (
	"fmt"

	"threatmap/internal/domain/model"
	"threatmap/internal/log"
)

// strideCategories are the six STRIDE threat categories.
var strideCategories = []model.ThreatCategory{
	model.CategorySpoofing,
	model.CategoryTampering,
	model.CategoryRepudiation,
	model.CategoryInformationDisclosure,
	model.CategoryDenialOfService,
	model.CategoryPrivilegeEscalation,
}

// NaiveSTRIDE proposes one threat per STRIDE category for every element,
// without any inspection of the element's role or connectivity. Proposed
// threat identifiers are deterministic (category plus element name), which
// is what makes repeated enumeration idempotent under AddThreats.
type NaiveSTRIDE struct{}

// Generate implements Method.
func (NaiveSTRIDE) Generate(_ []*model.Threat, elements []model.Element) []*model.Threat {
	var proposed []*model.Threat
	for _, e := range elements {
		if e.Kind() == model.KindBoundary {
			continue
		}
		for _, category := range strideCategories {
			threat, err := model.NewThreat(fmt.Sprintf("%s of %s", category.Name(), e.Name())).
				ID(model.ID(fmt.Sprintf("%s_%s", category.Name(), e.Name()))).
				Category(category).
				Element(e.Identifier()).
				Build()
			if err != nil {
				log.Warn(log.CatEnum, "skipping element", "element", e.Identifier(), "error", err)
				continue
			}
			proposed = append(proposed, threat)
		}
	}
	log.Debug(log.CatEnum, "stride enumeration complete", "proposed", len(proposed))
	return proposed
}
