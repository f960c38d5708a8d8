package foodex2

import "github.com/openfoodex/foodex2validator/internal/aggregate"

// TermSummary is the public projection of a catalogue search hit.
type TermSummary struct {
	Code            string
	ExtendedName    string
	CommonNames     string
	ScientificNames string
	TermType        string
	Deprecated      bool
	Hierarchies     []string
}

func toResult(r *aggregate.Result) *Result {
	var baseTerm *BaseTermInfo
	if r.BaseTerm != nil {
		baseTerm = &BaseTermInfo{
			Code:        r.BaseTerm.Code,
			Name:        r.BaseTerm.ExtendedName,
			Type:        r.BaseTerm.TermType.String(),
			DetailLevel: r.BaseTerm.DetailLevel,
		}
	}

	facets := make([]FacetInfo, 0, len(r.Facets))
	for _, f := range r.Facets {
		facets = append(facets, FacetInfo{
			Group:          f.Group,
			GroupLabel:     f.GroupLabel,
			Descriptor:     f.Descriptor,
			DescriptorName: f.DescriptorName,
		})
	}

	warnings := make([]WarningInfo, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, toWarningInfo(w))
	}

	return &Result{
		Valid:                  r.Valid,
		OriginalCode:           r.OriginalCode,
		CleanedCode:            r.CleanedCode,
		BaseTerm:               baseTerm,
		Facets:                 facets,
		InterpretedDescription: r.InterpretedDescription,
		Warnings:               warnings,
		Severity:               r.Severity.String(),
		WarningCounts: WarningCounts{
			Error: r.WarningCounts.Error,
			High:  r.WarningCounts.High,
			Low:   r.WarningCounts.Low,
			Info:  r.WarningCounts.Info,
			Total: r.WarningCounts.Total,
		},
	}
}
