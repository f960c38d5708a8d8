// Package catalogue provides read-only access to the FoodEx2 reference
// data: terms, hierarchy parent links, forbidden-process tables, ordinal
// codes, and rule messages (spec.md §4.1). The store never mutates state
// after construction; a missing term or code is a successful "not found"
// response, never an error — callers decide whether absence matters.
package catalogue

import "github.com/openfoodex/foodex2validator/internal/model"

// Store is the read-only catalogue query surface the rest of the engine is
// built on.
type Store interface {
	// LookupTerm returns a term by its code, or nil if unknown.
	LookupTerm(code string) *model.Term
	// ImplicitFacets returns the parsed implicit facets for a term.
	ImplicitFacets(term *model.Term) []model.FacetRef
	// Parent returns the direct parent of code in hierarchy, and whether one exists.
	Parent(code, hierarchy string) (string, bool)
	// IsMember reports whether code has any position in hierarchy.
	IsMember(code, hierarchy string) bool
	// ForbiddenProcessesFor returns the set of process codes forbidden for
	// term, unioned over term itself and its ancestors in the reporting
	// hierarchy (spec.md §3, inclusive of the term itself).
	ForbiddenProcessesFor(term *model.Term) map[string]bool
	// ProcessOrdinal returns the ordinal code for a process in a context
	// term's root group. A missing value is the non-exclusive zero ordinal.
	ProcessOrdinal(processCode string, contextTerm *model.Term) model.Ordinal
	// Rule returns the static definition for a rule id.
	Rule(id model.RuleID) model.RuleDefinition
	// SearchTerms performs a free-text search over term codes and names.
	SearchTerms(query string, limit int) []model.TermSummary
	// DehydrationDescriptors returns the catalogue-driven set of F28 process
	// descriptors that indicate dehydration, for BR28 (spec.md §4.5, §9).
	DehydrationDescriptors() map[string]bool
	// DerivativeCreatingStates returns the catalogue-driven set of F03 state
	// descriptors that create a derivative, for BR13 (spec.md §4.5, §9).
	DerivativeCreatingStates() map[string]bool
}
