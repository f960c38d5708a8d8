// Package structural enforces the shape and reference-integrity checks
// that run immediately after parsing and before any business rule (spec.md
// §4.4): base and descriptor existence, facet-category membership,
// single-cardinality, and duplication.
package structural

import (
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
)

// Validate runs every structural check against expr and returns the
// accumulated warnings. A nil expr (the parser's signal for an unparseable
// base) is not this package's concern; callers only reach here once the
// parser has produced a well-formed FacetExpression.
func Validate(store catalogue.Store, expr *model.FacetExpression) []model.Warning {
	var warnings []model.Warning

	baseTerm := store.LookupTerm(expr.Base)
	if baseTerm == nil {
		warnings = append(warnings, warn(store, model.RuleBaseNotFound, []string{expr.Base}))
		return warnings
	}

	warnings = append(warnings, checkDescriptorsExist(store, expr)...)
	warnings = append(warnings, checkFacetCategories(store, expr)...)
	warnings = append(warnings, checkCardinality(store, expr)...)
	warnings = append(warnings, checkDuplicates(store, expr)...)

	return warnings
}

func checkDescriptorsExist(store catalogue.Store, expr *model.FacetExpression) []model.Warning {
	var warnings []model.Warning
	for _, f := range expr.Facets {
		if store.LookupTerm(f.Descriptor) == nil {
			warnings = append(warnings, warn(store, model.RuleFacetNotFound, []string{f.Group + "." + f.Descriptor}))
		}
	}
	return warnings
}

func checkFacetCategories(store catalogue.Store, expr *model.FacetExpression) []model.Warning {
	var warnings []model.Warning
	for _, f := range expr.Facets {
		if store.LookupTerm(f.Descriptor) == nil {
			continue // already reported by checkDescriptorsExist
		}
		hierarchy, known := model.HierarchyForGroup(f.Group)
		if !known || !store.IsMember(f.Descriptor, hierarchy) {
			warnings = append(warnings, warn(store, model.RuleCategoryInvalid, []string{f.Group + "." + f.Descriptor}))
		}
	}
	return warnings
}

func checkCardinality(store catalogue.Store, expr *model.FacetExpression) []model.Warning {
	counts := make(map[string]int)
	for _, f := range expr.Facets {
		if model.SingleCardinalityGroups[f.Group] {
			counts[f.Group]++
		}
	}
	var warnings []model.Warning
	for group, n := range counts {
		if n > 1 {
			warnings = append(warnings, warn(store, model.RuleCardinality, []string{group}))
		}
	}
	return warnings
}

func checkDuplicates(store catalogue.Store, expr *model.FacetExpression) []model.Warning {
	var warnings []model.Warning
	seen := make([]model.FacetRef, 0, len(expr.Facets))
	for _, f := range expr.Facets {
		for _, s := range seen {
			if s.Equal(f) {
				warnings = append(warnings, warn(store, model.RuleDuplicate, []string{f.Group + "." + f.Descriptor}))
				break
			}
		}
		seen = append(seen, f)
	}
	return warnings
}

func warn(store catalogue.Store, id model.RuleID, terms []string) model.Warning {
	def := store.Rule(id)
	return model.Warning{Rule: id, Message: def.Message, Severity: def.Severity, Terms: terms}
}
