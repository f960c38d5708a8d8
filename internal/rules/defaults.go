// Package rules implements the business-rule evaluator: the BR01-BR28
// semantic checks (less the empty BR02/BR09/BR18 slots and the inert
// BR14/BR15 placeholders) that run once an expression has passed
// structural validation (spec.md §4.5). BR29-BR31 are structural errors
// raised by the parser and structural packages, not here.
package rules

import "github.com/openfoodex/foodex2validator/internal/model"

// DefaultDefinitions returns the rule table's embedded fallback text and
// severities (spec.md §4.5, §6: "when absent, fall back to the textual
// messages embedded in this specification"). A catalogueload loader seeds
// a store with these before layering any rule-message table found in the
// catalogue database on top.
func DefaultDefinitions() []model.RuleDefinition {
	return []model.RuleDefinition{
		{ID: model.RuleStructBase, Severity: model.SeverityError,
			Message: "base term must be five uppercase alphanumeric characters"},
		{ID: model.RuleStructFacet, Severity: model.SeverityError,
			Message: "malformed facet fragment, expected FNN.DESCR"},
		{ID: model.RuleImplicitRemoved, Severity: model.SeverityHigh,
			Message: "explicit facet duplicates an implicit facet inherited from the base term"},
		{ID: model.RuleBaseNotFound, Severity: model.SeverityError,
			Message: "base term code does not resolve to a known term"},
		{ID: model.RuleFacetNotFound, Severity: model.SeverityError,
			Message: "facet descriptor code does not resolve to a known term"},
		{ID: model.RuleCategoryInvalid, Severity: model.SeverityError,
			Message: "facet descriptor does not belong to the hierarchy assigned to its group"},
		{ID: model.RuleCardinality, Severity: model.SeverityHigh,
			Message: "group appears more than once among the explicit facets"},
		{ID: model.RuleDuplicate, Severity: model.SeverityHigh,
			Message: "duplicate facet in expression"},

		{ID: model.BR01, Severity: model.SeverityHigh,
			Message: "explicit F27 source of the commodity is not a descendant of an implicit F27 or of the base term in racsource"},
		{ID: model.BR03, Severity: model.SeverityHigh,
			Message: "F01 source facet not allowed on a composite food"},
		{ID: model.BR04, Severity: model.SeverityHigh,
			Message: "F27 source of the commodity facet not allowed on a composite food"},
		{ID: model.BR05, Severity: model.SeverityHigh,
			Message: "explicit F27 source of the commodity is not a descendant of an implicit F27 in racsource"},
		{ID: model.BR06, Severity: model.SeverityHigh,
			Message: "derivative with an explicit F01 source facet must also carry a F27 source of the commodity facet"},
		{ID: model.BR07, Severity: model.SeverityHigh,
			Message: "derivative with an explicit F01 source facet must not carry more than one F27 source of the commodity facet"},
		{ID: model.BR08, Severity: model.SeverityHigh,
			Message: "base term is not a member of the reporting hierarchy"},
		{ID: model.BR10, Severity: model.SeverityLow,
			Message: "base term has the non-specific term type"},
		{ID: model.BR11, Severity: model.SeverityLow,
			Message: "explicit F28 process descriptor is the generic Processed term or descends from it"},
		{ID: model.BR12, Severity: model.SeverityLow,
			Message: "raw or derivative term should not carry an explicit F04 ingredient facet"},
		{ID: model.BR13, Severity: model.SeverityHigh,
			Message: "explicit F03 physical state creates a derivative and requires a dedicated derivative base term"},
		{ID: model.BR16, Severity: model.SeverityHigh,
			Message: "explicit facet is a non-sibling ancestor of an implicit facet in the same group"},
		{ID: model.BR17, Severity: model.SeverityHigh,
			Message: "base term is itself a facet descriptor"},
		{ID: model.BR19, Severity: model.SeverityHigh,
			Message: "explicit F28 process is forbidden for this term or one of its ancestors"},
		{ID: model.BR20, Severity: model.SeverityHigh,
			Message: "term is deprecated"},
		{ID: model.BR21, Severity: model.SeverityHigh,
			Message: "term is dismissed"},
		{ID: model.BR22, Severity: model.SeverityNone,
			Message: "no blocking warning accumulated"},
		{ID: model.BR23, Severity: model.SeverityLow,
			Message: "hierarchy-only base term is a member of the exposure hierarchy"},
		{ID: model.BR24, Severity: model.SeverityHigh,
			Message: "hierarchy-only base term is not a member of the exposure hierarchy"},
		{ID: model.BR25, Severity: model.SeverityHigh,
			Message: "single-cardinality group carries more than one explicit facet"},
		{ID: model.BR26, Severity: model.SeverityHigh,
			Message: "two or more F28 process facets share an integer ordinal and at least one is explicit"},
		{ID: model.BR27, Severity: model.SeverityHigh,
			Message: "two or more F28 process facets share a fractional ordinal and at least one is explicit"},
		{ID: model.BR28, Severity: model.SeverityHigh,
			Message: "reconstitution or dilution process applied to a food already concentrated or dehydrated"},

		// BR14/BR15 are reserved for ICT/DCF context and carry no predicate
		// (spec.md §4.5, §9): registered so Rule() never falls back silently,
		// never evaluated by Evaluate.
		{ID: model.BR14, Severity: model.SeverityNone, Message: "reserved for ICT/DCF context, not implemented"},
		{ID: model.BR15, Severity: model.SeverityNone, Message: "reserved for ICT/DCF context, not implemented"},
	}
}
