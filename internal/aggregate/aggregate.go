// Package aggregate combines the parser, structural validator, and rule
// evaluator into a single validation pass and rolls their warnings up into
// severity, validity, and canonical output (spec.md §4.6).
package aggregate

import (
	"strings"

	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/hierarchy"
	"github.com/openfoodex/foodex2validator/internal/model"
	"github.com/openfoodex/foodex2validator/internal/parser"
	"github.com/openfoodex/foodex2validator/internal/rules"
	"github.com/openfoodex/foodex2validator/internal/structural"
)

// Options configures aggregation behavior beyond the spec's default.
type Options struct {
	// HighIsBlocking controls whether a HIGH-severity warning marks a
	// result invalid. Defaults to true (spec.md §4.6, §9: "default behavior
	// here is invalidation").
	HighIsBlocking bool
	// SkipRulesOnStructuralError controls whether the rule evaluator runs
	// after a structural ERROR. Defaults to true (spec.md §4.5).
	SkipRulesOnStructuralError bool
}

// DefaultOptions returns the spec's default aggregation behavior.
func DefaultOptions() Options {
	return Options{HighIsBlocking: true, SkipRulesOnStructuralError: true}
}

// FacetDetail is a single surviving explicit facet, resolved against the
// catalogue for its descriptor name and group label.
type FacetDetail struct {
	Group          string
	GroupLabel     string
	Descriptor     string
	DescriptorName string
}

// Counts tallies warnings by severity.
type Counts struct {
	Error int
	High  int
	Low   int
	Info  int
	Total int
}

// Result is the aggregator's internal projection of a validated
// expression, converted by the root package into the public foodex2.Result.
type Result struct {
	Valid                  bool
	OriginalCode           string
	CleanedCode            string
	BaseTerm               *model.Term
	Facets                 []FacetDetail
	InterpretedDescription string
	Warnings               []model.Warning
	Severity               model.Severity
	WarningCounts          Counts
}

// Validate runs the full pipeline over a raw expression string.
func Validate(store catalogue.Store, resolver *hierarchy.Resolver, original string, opts Options) (*Result, error) {
	expr, warnings := parser.Parse(original)
	if expr == nil {
		return finalize(store, original, "", nil, nil, warnings, opts), nil
	}

	warnings = append(warnings, structural.Validate(store, expr)...)

	cleaned, cleanedCode, normWarning := parser.Normalize(store, expr)
	if normWarning != nil {
		warnings = append(warnings, *normWarning)
	}
	if cleaned == nil {
		cleaned = expr
	}

	if !(opts.SkipRulesOnStructuralError && hasError(warnings)) {
		ruleWarnings, err := rules.Evaluate(store, resolver, expr)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, ruleWarnings...)
	}

	baseTerm := store.LookupTerm(expr.Base)
	return finalize(store, original, cleanedCode, baseTerm, cleaned.Facets, warnings, opts), nil
}

func finalize(store catalogue.Store, original, cleanedCode string, baseTerm *model.Term, survivingFacets []model.FacetRef, warnings []model.Warning, opts Options) *Result {
	counts := Counts{}
	severity := model.SeverityNone
	for _, w := range warnings {
		severity = model.Max(severity, w.Severity)
		switch w.Severity {
		case model.SeverityError:
			counts.Error++
		case model.SeverityHigh:
			counts.High++
		case model.SeverityLow:
			counts.Low++
		default:
			counts.Info++
		}
		counts.Total++
	}

	valid := severity < model.SeverityHigh
	if !opts.HighIsBlocking {
		valid = severity < model.SeverityError
	}

	var facets []FacetDetail
	for _, f := range survivingFacets {
		label, _ := model.HierarchyForGroup(f.Group)
		name := ""
		if t := store.LookupTerm(f.Descriptor); t != nil {
			name = t.ExtendedName
		}
		facets = append(facets, FacetDetail{
			Group:          f.Group,
			GroupLabel:     label,
			Descriptor:     f.Descriptor,
			DescriptorName: name,
		})
	}

	return &Result{
		Valid:                  valid,
		OriginalCode:           original,
		CleanedCode:            cleanedCode,
		BaseTerm:               baseTerm,
		Facets:                 facets,
		InterpretedDescription: interpretedDescription(baseTerm, facets),
		Warnings:               warnings,
		Severity:               severity,
		WarningCounts:          counts,
	}
}

func interpretedDescription(baseTerm *model.Term, facets []FacetDetail) string {
	if baseTerm == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(baseTerm.ExtendedName)
	for _, f := range facets {
		b.WriteString(", ")
		b.WriteString(f.GroupLabel)
		b.WriteString(" = ")
		b.WriteString(f.DescriptorName)
	}
	return b.String()
}

func hasError(warnings []model.Warning) bool {
	for _, w := range warnings {
		if w.Severity == model.SeverityError {
			return true
		}
	}
	return false
}
