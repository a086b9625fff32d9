package validate

import (
	"fmt"
	"sort"

	"github.com/aidirectory/aidirectory/pkg/dedupe"
	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/normalize"
)

// descriptionSimilarityThreshold flags near-identical descriptions on two
// entities: a strong sign one was scraped onto the wrong record.
const descriptionSimilarityThreshold = 0.90

// minDescriptionLength skips short boilerplate descriptions that collide
// naturally.
const minDescriptionLength = 20

// aggregatorDomains are directory and listing sites that describe entities
// but are never an entity's own website.
var aggregatorDomains = map[string]bool{
	"theresanaiforthat.com": true,
	"toolify.ai":            true,
	"futurepedia.io":        true,
	"alternativeto.net":     true,
	"producthunt.com":       true,
	"crunchbase.com":        true,
	"pitchbook.com":         true,
	"ycombinator.com":       true,
	"github.com":            true,
	"huggingface.co":        true,
}

// crossIndex holds the per-dataset indexes the contamination checks run
// against. Built once per validation run.
type crossIndex struct {
	websiteOwners map[string][]string // canonical website -> slugs
	descriptions  map[string]string   // slug -> description
}

func buildCrossIndex(ents []*entities.Entity) *crossIndex {
	idx := &crossIndex{
		websiteOwners: make(map[string][]string),
		descriptions:  make(map[string]string),
	}
	for _, e := range ents {
		if site, ok := stringValue(e, entities.FieldWebsite); ok {
			idx.websiteOwners[site] = append(idx.websiteOwners[site], e.Slug)
		}
		if desc, ok := stringValue(e, entities.FieldDescription); ok && len(desc) >= minDescriptionLength {
			idx.descriptions[e.Slug] = desc
		}
	}
	for _, owners := range idx.websiteOwners {
		sort.Strings(owners)
	}
	return idx
}

// checkContamination flags field values that leaked across entities:
// aggregator URLs as websites, one website owned by several entities, and
// near-duplicate descriptions.
func (v *Validator) checkContamination(e *entities.Entity, idx *crossIndex) []Defect {
	var defects []Defect

	if site, ok := stringValue(e, entities.FieldWebsite); ok {
		if domain := normalize.Domain(site); aggregatorDomains[domain] {
			defects = append(defects, Defect{
				Slug:    e.Slug,
				Field:   entities.FieldWebsite,
				Kind:    DefectContamination,
				Message: fmt.Sprintf("website points to aggregator site %q", domain),
			})
		}
		if owners := idx.websiteOwners[site]; len(owners) > 1 {
			for _, other := range owners {
				if other == e.Slug {
					continue
				}
				defects = append(defects, Defect{
					Slug:    e.Slug,
					Field:   entities.FieldWebsite,
					Kind:    DefectContamination,
					Message: fmt.Sprintf("website is shared with entity %q", other),
				})
			}
		}
	}

	// Each near-duplicate pair is reported once, on the later slug.
	if desc, ok := idx.descriptions[e.Slug]; ok {
		var others []string
		for slug := range idx.descriptions {
			if slug < e.Slug {
				others = append(others, slug)
			}
		}
		sort.Strings(others)
		for _, other := range others {
			if dedupe.Ratio(desc, idx.descriptions[other]) >= descriptionSimilarityThreshold {
				defects = append(defects, Defect{
					Slug:    e.Slug,
					Field:   entities.FieldDescription,
					Kind:    DefectContamination,
					Message: fmt.Sprintf("description nearly duplicates entity %q", other),
				})
			}
		}
	}

	return defects
}

func stringValue(e *entities.Entity, f entities.Field) (string, bool) {
	v, ok := e.Field(f)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
