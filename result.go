package foodex2

import "github.com/openfoodex/foodex2validator/internal/model"

// BaseTermInfo is the base-term projection carried on a Result.
type BaseTermInfo struct {
	Code        string
	Name        string
	Type        string
	DetailLevel string
}

// FacetInfo is a single surviving explicit facet on a Result.
type FacetInfo struct {
	Group          string
	GroupLabel     string
	Descriptor     string
	DescriptorName string
}

// WarningInfo is the public projection of an internal model.Warning.
type WarningInfo struct {
	Rule     string
	Message  string
	Severity string
	Terms    []string
}

// WarningCounts tallies warnings by severity.
type WarningCounts struct {
	Error int
	High  int
	Low   int
	Info  int
	Total int
}

// Result is the outcome of validating a single FoodEx2 expression
// (spec.md §6).
type Result struct {
	Valid                  bool
	OriginalCode           string
	CleanedCode            string
	BaseTerm               *BaseTermInfo
	Facets                 []FacetInfo
	InterpretedDescription string
	Warnings               []WarningInfo
	Severity               string
	WarningCounts          WarningCounts
}

func toWarningInfo(w model.Warning) WarningInfo {
	return WarningInfo{
		Rule:     string(w.Rule),
		Message:  w.Message,
		Severity: w.Severity.String(),
		Terms:    w.Terms,
	}
}
