package rules

import (
	"regexp"

	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/hierarchy"
	"github.com/openfoodex/foodex2validator/internal/model"
)

// processedTermCode is the generic "Processed" term in the process
// hierarchy referenced by BR11 (spec.md §4.5).
const processedTermCode = "A07XS"

var dehydratedNamePattern = regexp.MustCompile(`(?i)concentrate|powder|dried|dehydrated`)
var reconstitutionNamePattern = regexp.MustCompile(`(?i)reconstitut|dilut`)

// Evaluate runs every business rule against expr's base term and explicit
// facets, in id order except for BR22, which runs last because it depends
// on every other rule's outcome, and returns the accumulated warnings. It assumes
// expr has already passed structural validation: every descriptor code
// resolves to a term, and the base term is non-nil.
func Evaluate(store catalogue.Store, resolver *hierarchy.Resolver, expr *model.FacetExpression) ([]model.Warning, error) {
	base := store.LookupTerm(expr.Base)
	if base == nil {
		return nil, nil
	}
	implicit := store.ImplicitFacets(base)

	var warnings []model.Warning
	appendIf := func(ok bool, id model.RuleID, terms ...string) {
		if ok {
			warnings = append(warnings, warn(store, id, terms))
		}
	}

	f27explicit := expr.ByGroup("F27")
	f01explicit := expr.ByGroup("F01")

	// BR01: raw term, explicit F27 must descend from an implicit F27 or the base itself.
	if base.TermType == model.TermTypeRaw {
		for _, f := range f27explicit {
			ok, err := descendsFromAnyOrIsBase(resolver, f.Descriptor, implicitDescriptors(implicit, "F27"), base.Code, catalogue.RacSourceHierarchy)
			if err != nil {
				return warnings, err
			}
			appendIf(!ok, model.BR01, f.Descriptor)
		}
	}

	// BR03/BR04: composite/simple-composite terms forbid explicit F01/F27.
	if base.TermType == model.TermTypeComposite || base.TermType == model.TermTypeSimpleComposite {
		appendIf(len(f01explicit) > 0, model.BR03, expr.Base)
		appendIf(len(f27explicit) > 0, model.BR04, expr.Base)
	}

	// BR05/BR06/BR07: derivative terms.
	if base.TermType == model.TermTypeDerivative {
		implicitF27 := implicitDescriptors(implicit, "F27")
		if len(implicitF27) > 0 {
			for _, f := range f27explicit {
				ok, err := resolver.IsChildOfAny(f.Descriptor, implicitF27, catalogue.RacSourceHierarchy)
				if err != nil {
					return warnings, err
				}
				appendIf(!ok, model.BR05, f.Descriptor)
			}
		}
		if len(f01explicit) > 0 {
			union := make(map[string]bool, len(implicitF27)+len(f27explicit))
			for _, d := range implicitF27 {
				union[d] = true
			}
			for _, f := range f27explicit {
				union[f.Descriptor] = true
			}
			appendIf(len(union) == 0, model.BR06, expr.Base)
			appendIf(len(union) > 1, model.BR07, expr.Base)
		}
	}

	// BR08: base must be a report hierarchy member unless dismissed.
	if !base.Dismissed() {
		appendIf(!store.IsMember(base.Code, catalogue.ReportingHierarchy), model.BR08, base.Code)
	}

	// BR10: non-specific term type.
	appendIf(base.TermType == model.TermTypeNonSpecific, model.BR10, base.Code)

	// BR11: explicit F28 descends from (or is) the generic Processed term.
	for _, f := range expr.ByGroup("F28") {
		if f.Descriptor == processedTermCode {
			appendIf(true, model.BR11, f.Descriptor)
			continue
		}
		ok, err := resolver.IsAncestor(processedTermCode, f.Descriptor, catalogue.ProcessHierarchy)
		if err != nil {
			return warnings, err
		}
		appendIf(ok, model.BR11, f.Descriptor)
	}

	// BR12: raw or derivative terms should not carry an explicit F04 ingredient facet.
	if base.TermType == model.TermTypeRaw || base.TermType == model.TermTypeDerivative {
		for _, f := range expr.ByGroup("F04") {
			appendIf(true, model.BR12, f.Descriptor)
		}
	}

	// BR13: raw term with an explicit F03 in the derivative-creating states set.
	if base.TermType == model.TermTypeRaw {
		derivativeStates := store.DerivativeCreatingStates()
		for _, f := range expr.ByGroup("F03") {
			appendIf(derivativeStates[f.Descriptor], model.BR13, f.Descriptor)
		}
	}

	// BR16: explicit facet is a non-sibling ancestor of an implicit facet in the same group.
	for _, f := range expr.Facets {
		hierarchyName, known := model.HierarchyForGroup(f.Group)
		if !known {
			continue
		}
		for _, imp := range implicit {
			if imp.Group != f.Group {
				continue
			}
			isAncestor, err := resolver.IsAncestor(f.Descriptor, imp.Descriptor, hierarchyName)
			if err != nil {
				return warnings, err
			}
			if isAncestor && !resolver.AreSiblings(f.Descriptor, imp.Descriptor, hierarchyName) {
				appendIf(true, model.BR16, f.Descriptor, imp.Descriptor)
			}
		}
	}

	// BR17: base term is itself a facet descriptor.
	appendIf(base.TermType == model.TermTypeFacet, model.BR17, base.Code)

	// BR19: raw term, explicit F28 forbidden for the base or an ancestor.
	if base.TermType == model.TermTypeRaw {
		forbidden := store.ForbiddenProcessesFor(base)
		for _, f := range expr.ByGroup("F28") {
			appendIf(forbidden[f.Descriptor], model.BR19, f.Descriptor)
		}
	}

	// BR20/BR21: deprecated / dismissed, base and every descriptor.
	appendIf(base.Deprecated, model.BR20, base.Code)
	appendIf(base.Dismissed(), model.BR21, base.Code)
	for _, f := range expr.Facets {
		if t := store.LookupTerm(f.Descriptor); t != nil {
			appendIf(t.Deprecated, model.BR20, f.Descriptor)
			appendIf(t.Dismissed(), model.BR21, f.Descriptor)
		}
	}

	// BR23/BR24: hierarchy-detail base term and exposure hierarchy membership.
	if base.IsHierarchyDetail() {
		inExpo := store.IsMember(base.Code, catalogue.ExposureHierarchy)
		appendIf(inExpo, model.BR23, base.Code)
		appendIf(!inExpo, model.BR24, base.Code)
	}

	// BR25: single-cardinality violation, reported again as a business rule.
	counts := make(map[string]int)
	for _, f := range expr.Facets {
		if model.SingleCardinalityGroups[f.Group] {
			counts[f.Group]++
		}
	}
	for group, n := range counts {
		appendIf(n > 1, model.BR25, group)
	}

	// BR26/BR27: shared ordinal among F28 process facets.
	if base.TermType == model.TermTypeDerivative {
		w, err := evaluateOrdinalSharing(store, base, implicit, expr.ByGroup("F28"))
		if err != nil {
			return warnings, err
		}
		warnings = append(warnings, w...)
	}

	// BR28: reconstitution/dilution applied to an already-dehydrated food.
	if isDehydratedFood(store, base, implicit) {
		for _, f := range expr.ByGroup("F28") {
			if t := store.LookupTerm(f.Descriptor); t != nil && reconstitutionNamePattern.MatchString(t.ExtendedName) {
				appendIf(true, model.BR28, f.Descriptor)
			}
		}
	}

	// BR22: success marker, only meaningful once every other rule has run.
	if !hasBlockingWarning(warnings) && base.TermType != model.TermTypeHierarchy {
		appendIf(true, model.BR22, base.Code)
	}

	return warnings, nil
}

type ordinalFacet struct {
	descriptor string
	explicit   bool
}

func evaluateOrdinalSharing(store catalogue.Store, base *model.Term, implicit []model.FacetRef, explicitF28 []model.FacetRef) ([]model.Warning, error) {
	var facets []ordinalFacet
	seen := make(map[string]bool)
	for _, f := range explicitF28 {
		facets = append(facets, ordinalFacet{descriptor: f.Descriptor, explicit: true})
		seen[f.Descriptor] = true
	}
	for _, f := range implicit {
		if f.Group != "F28" || seen[f.Descriptor] {
			continue
		}
		facets = append(facets, ordinalFacet{descriptor: f.Descriptor, explicit: false})
	}

	var warnings []model.Warning
	reported26 := make(map[string]bool)
	reported27 := make(map[string]bool)
	for i := 0; i < len(facets); i++ {
		for j := i + 1; j < len(facets); j++ {
			if !facets[i].explicit && !facets[j].explicit {
				continue
			}
			oi := store.ProcessOrdinal(facets[i].descriptor, base)
			oj := store.ProcessOrdinal(facets[j].descriptor, base)
			key := pairKey(facets[i].descriptor, facets[j].descriptor)
			if oi.SameFraction(oj) {
				if !reported27[key] {
					reported27[key] = true
					warnings = append(warnings, warn(store, model.BR27, []string{facets[i].descriptor, facets[j].descriptor}))
				}
			} else if oi.SameInteger(oj) {
				if !reported26[key] {
					reported26[key] = true
					warnings = append(warnings, warn(store, model.BR26, []string{facets[i].descriptor, facets[j].descriptor}))
				}
			}
		}
	}
	return warnings, nil
}

func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

func isDehydratedFood(store catalogue.Store, base *model.Term, implicit []model.FacetRef) bool {
	if dehydratedNamePattern.MatchString(base.ExtendedName) {
		return true
	}
	dehydration := store.DehydrationDescriptors()
	for _, f := range implicit {
		if f.Group == "F28" && dehydration[f.Descriptor] {
			return true
		}
	}
	return false
}

func hasBlockingWarning(warnings []model.Warning) bool {
	for _, w := range warnings {
		if w.Severity == model.SeverityError || w.Severity == model.SeverityHigh {
			return true
		}
	}
	return false
}

func implicitDescriptors(implicit []model.FacetRef, group string) []string {
	var out []string
	for _, f := range implicit {
		if f.Group == group {
			out = append(out, f.Descriptor)
		}
	}
	return out
}

// descendsFromAnyOrIsBase reports whether descriptor descends from any of
// candidates in hierarchy, or descends from (or equals) baseCode.
func descendsFromAnyOrIsBase(resolver *hierarchy.Resolver, descriptor string, candidates []string, baseCode, hierarchyName string) (bool, error) {
	if descriptor == baseCode {
		return true, nil
	}
	ok, err := resolver.IsAncestor(baseCode, descriptor, hierarchyName)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	if len(candidates) == 0 {
		return false, nil
	}
	return resolver.IsChildOfAny(descriptor, candidates, hierarchyName)
}

func warn(store catalogue.Store, id model.RuleID, terms []string) model.Warning {
	def := store.Rule(id)
	ruleFiredTotal.WithLabelValues(string(id), def.Severity.String()).Inc()
	return model.Warning{Rule: id, Message: def.Message, Severity: def.Severity, Terms: terms}
}
