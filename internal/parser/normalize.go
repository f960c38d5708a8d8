package parser

import (
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
)

// Normalize strips explicit facets that duplicate an implicit facet already
// inherited from the base term (spec.md §4.2, §9). It never rejects an
// expression; it only reports what it removed. cleanedCode is empty when
// nothing was stripped, per the aggregator's "null if nothing was stripped"
// contract.
func Normalize(store catalogue.Store, expr *model.FacetExpression) (cleaned *model.FacetExpression, cleanedCode string, warning *model.Warning) {
	if expr == nil {
		return nil, "", nil
	}

	base := store.LookupTerm(expr.Base)
	implicit := store.ImplicitFacets(base)
	if len(implicit) == 0 || len(expr.Facets) == 0 {
		return expr, "", nil
	}

	surviving := make([]model.FacetRef, 0, len(expr.Facets))
	var removed []model.FacetRef
	for _, f := range expr.Facets {
		if containsFacet(implicit, f) {
			removed = append(removed, f)
			continue
		}
		surviving = append(surviving, f)
	}
	if len(removed) == 0 {
		return expr, "", nil
	}

	cleanedExpr := &model.FacetExpression{Base: expr.Base, Facets: surviving}
	code := Serialize(cleanedExpr)
	terms := make([]string, 0, len(removed))
	for _, f := range removed {
		terms = append(terms, f.Group+"."+f.Descriptor)
	}
	return cleanedExpr, code, &model.Warning{
		Rule:     model.RuleImplicitRemoved,
		Message:  "explicit facet duplicates an implicit facet inherited from the base term, removed in cleaned code",
		Severity: model.SeverityHigh,
		Terms:    terms,
	}
}

func containsFacet(refs []model.FacetRef, target model.FacetRef) bool {
	for _, r := range refs {
		if r.Equal(target) {
			return true
		}
	}
	return false
}
