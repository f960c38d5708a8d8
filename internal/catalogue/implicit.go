package catalogue

import "github.com/openfoodex/foodex2validator/internal/model"

// ParseImplicitFacets parses a term's raw implicit-facets column, e.g.
// "F01.A059P$F27.A000A$F33.A0C4A" or the "#"-delimited variant seen in
// older catalogue exports (spec.md §4.1, §9; grounded on
// FoodEx2Database.get_implicit_facets in the original prototype). Both
// separators are accepted interchangeably since exports mix them.
func ParseImplicitFacets(raw string) []model.FacetRef {
	if raw == "" {
		return nil
	}
	var out []model.FacetRef
	start := 0
	flush := func(end int) {
		pair := raw[start:end]
		if pair == "" {
			return
		}
		dot := -1
		for i := 0; i < len(pair); i++ {
			if pair[i] == '.' {
				dot = i
				break
			}
		}
		if dot <= 0 || dot >= len(pair)-1 {
			return
		}
		out = append(out, model.FacetRef{Group: pair[:dot], Descriptor: pair[dot+1:]})
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] == '$' || raw[i] == '#' {
			flush(i)
			start = i + 1
		}
	}
	flush(len(raw))
	return out
}
