package parser

import "github.com/openfoodex/foodex2validator/internal/model"

// Serialize renders an expression in canonical form: base, then a '#'
// before the first facet and '$' before every subsequent one (spec.md §6).
// Facets are serialized in the order they appear on expr; canonicalization
// of order, if desired, is the caller's responsibility.
func Serialize(expr *model.FacetExpression) string {
	if expr == nil {
		return ""
	}
	out := expr.Base
	for i, f := range expr.Facets {
		if i == 0 {
			out += "#"
		} else {
			out += "$"
		}
		out += f.Group + "." + f.Descriptor
	}
	return out
}
