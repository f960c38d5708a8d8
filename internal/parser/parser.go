// Package parser tokenizes a raw FoodEx2 expression into a
// model.FacetExpression and normalizes it against a catalogue (spec.md
// §4.2). It never resolves descriptor existence itself; that is the
// structural validator's job one layer up.
package parser

import (
	"regexp"
	"strings"

	"github.com/openfoodex/foodex2validator/internal/model"
)

var (
	baseRe  = regexp.MustCompile(`^[A-Z0-9]{5}$`)
	groupRe = regexp.MustCompile(`^F\d{2}$`)
	descRe  = regexp.MustCompile(`^[A-Z0-9]{5}$`)
)

// Parse tokenizes raw into a base term code and explicit facet refs.
// The base is everything before the first '#' or '$'. A malformed base
// yields a nil expression and a single STRUCT_BASE warning. A malformed
// facet fragment is skipped and reported as a STRUCT_FACET warning, but
// parsing continues over the remaining fragments so a single bad facet
// does not hide other faults.
func Parse(raw string) (*model.FacetExpression, []model.Warning) {
	baseEnd := strings.IndexAny(raw, "#$")
	if baseEnd < 0 {
		baseEnd = len(raw)
	}
	if !baseRe.MatchString(raw[:baseEnd]) {
		return nil, []model.Warning{{
			Rule:     model.RuleStructBase,
			Message:  "base term must be five uppercase alphanumeric characters",
			Severity: model.SeverityError,
			Terms:    []string{raw},
		}}
	}

	expr := &model.FacetExpression{Base: raw[:baseEnd]}
	var warnings []model.Warning

	for _, fragment := range splitFragments(raw[baseEnd:]) {
		ref, ok := parseFragment(fragment)
		if !ok {
			warnings = append(warnings, model.Warning{
				Rule:     model.RuleStructFacet,
				Message:  "malformed facet fragment " + fragment,
				Severity: model.SeverityError,
				Terms:    []string{fragment},
			})
			continue
		}
		expr.Facets = append(expr.Facets, ref)
	}

	return expr, warnings
}

// splitFragments splits on '#' or '$' in any position, discarding empty
// fragments produced by consecutive or trailing separators.
func splitFragments(remainder string) []string {
	raw := strings.FieldsFunc(remainder, func(r rune) bool {
		return r == '#' || r == '$'
	})
	return raw
}

func parseFragment(fragment string) (model.FacetRef, bool) {
	dot := strings.IndexByte(fragment, '.')
	if dot < 0 {
		return model.FacetRef{}, false
	}
	group, desc := fragment[:dot], fragment[dot+1:]
	if !groupRe.MatchString(group) || !descRe.MatchString(desc) {
		return model.FacetRef{}, false
	}
	return model.FacetRef{Group: group, Descriptor: desc}, true
}
