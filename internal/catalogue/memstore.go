package catalogue

import (
	"errors"
	"sort"
	"strings"

	efoodex2errors "github.com/openfoodex/foodex2validator/errors"
	"github.com/openfoodex/foodex2validator/internal/graphcycle"
	"github.com/openfoodex/foodex2validator/internal/model"
)

// Canonical hierarchy names referenced directly by name in the rule
// evaluator and structural validator (spec.md §GLOSSARY).
const (
	// ReportingHierarchy is the hierarchy forbidden-process and ordinal
	// lookups walk ancestry in, and whose membership BR08 requires.
	ReportingHierarchy = "report"
	// ExposureHierarchy is the hierarchy BR23/BR24 check membership in.
	ExposureHierarchy = "expo"
	// RacSourceHierarchy is the hierarchy F27 descriptors belong to.
	RacSourceHierarchy = "racsource"
	// ProcessHierarchy is the hierarchy F28 descriptors belong to.
	ProcessHierarchy = "process"
)

// MemStore is an in-memory, read-only Store built once at load time by
// internal/catalogueload and shared across every subsequent Validate call.
// It is safe for concurrent reads once loading is done: nothing mutates it
// after the loader's Add*/Set*/BuildSearchIndex calls complete.
type MemStore struct {
	terms   map[string]*model.Term
	facets  map[string][]model.FacetRef
	parents map[string]map[string]string
	members map[string]map[string]bool

	forbidden map[string][]model.ForbiddenProcess
	ordinals  map[string]map[string]model.Ordinal

	rules map[model.RuleID]model.RuleDefinition

	dehydration       map[string]bool
	derivativeCreates map[string]bool

	searchIndex []model.TermSummary
}

// New builds an empty MemStore. Loaders populate it through the Add*
// methods before it is handed to the engine as a Store.
func New() *MemStore {
	return &MemStore{
		terms:             make(map[string]*model.Term),
		facets:            make(map[string][]model.FacetRef),
		parents:           make(map[string]map[string]string),
		members:           make(map[string]map[string]bool),
		forbidden:         make(map[string][]model.ForbiddenProcess),
		ordinals:          make(map[string]map[string]model.Ordinal),
		rules:             make(map[model.RuleID]model.RuleDefinition),
		dehydration:       make(map[string]bool),
		derivativeCreates: make(map[string]bool),
	}
}

// AddTerm registers a term and its parsed implicit facets.
func (s *MemStore) AddTerm(t *model.Term) {
	if t == nil || t.Code == "" {
		return
	}
	s.terms[t.Code] = t
	s.facets[t.Code] = ParseImplicitFacets(t.ImplicitFacets)
}

// AddHierarchyLink records that code's parent in hierarchy is parentCode.
// A blank parentCode marks code as a root member of hierarchy without a
// parent, still recorded as a member.
func (s *MemStore) AddHierarchyLink(hierarchy, code, parentCode string) {
	if s.parents[hierarchy] == nil {
		s.parents[hierarchy] = make(map[string]string)
	}
	if s.members[hierarchy] == nil {
		s.members[hierarchy] = make(map[string]bool)
	}
	s.members[hierarchy][code] = true
	if parentCode != "" {
		s.parents[hierarchy][code] = parentCode
	}
}

// ValidateAcyclic checks every hierarchy's parent links for a cycle,
// failing fast at load time rather than leaving discovery to the first
// unlucky Ancestors call (spec.md §4.3). It reports the first cycle found.
func (s *MemStore) ValidateAcyclic() error {
	for hierarchy, links := range s.parents {
		starts := make([]string, 0, len(links))
		for code := range links {
			starts = append(starts, code)
		}
		sort.Strings(starts)

		err := graphcycle.Detect(graphcycle.Config[string]{
			Starts:  starts,
			Missing: graphcycle.MissingPolicyIgnore,
			Next: func(code string) ([]string, error) {
				if parent, ok := links[code]; ok && parent != "" {
					return []string{parent}, nil
				}
				return nil, nil
			},
		})
		if err != nil {
			var cycleErr graphcycle.CycleError[string]
			if errors.As(err, &cycleErr) {
				return efoodex2errors.Newf(efoodex2errors.ErrHierarchyCycle,
					"cycle detected while validating catalogue", "hierarchy=%s revisited=%s", hierarchy, cycleErr.Key)
			}
			return efoodex2errors.Newf(efoodex2errors.ErrHierarchyCycle,
				"cycle detected while validating catalogue", "hierarchy=%s: %v", hierarchy, err)
		}
	}
	return nil
}

// AddForbiddenProcess registers a forbidden-process row, effective for its
// group code and every descendant of that group in the reporting hierarchy.
func (s *MemStore) AddForbiddenProcess(fp model.ForbiddenProcess) {
	s.forbidden[fp.RootGroupCode] = append(s.forbidden[fp.RootGroupCode], fp)
	if s.ordinals[fp.RootGroupCode] == nil {
		s.ordinals[fp.RootGroupCode] = make(map[string]model.Ordinal)
	}
	s.ordinals[fp.RootGroupCode][fp.ProcessCode] = fp.OrdinalCode
}

// AddRule registers the static message/severity for a rule id.
func (s *MemStore) AddRule(def model.RuleDefinition) {
	s.rules[def.ID] = def
}

// SetDehydrationDescriptors installs the catalogue-driven BR28 descriptor set.
func (s *MemStore) SetDehydrationDescriptors(codes []string) {
	for _, c := range codes {
		s.dehydration[c] = true
	}
}

// SetDerivativeCreatingStates installs the catalogue-driven BR13 state set.
func (s *MemStore) SetDerivativeCreatingStates(codes []string) {
	for _, c := range codes {
		s.derivativeCreates[c] = true
	}
}

// BuildSearchIndex snapshots the loaded terms into the search index. Loaders
// call this once after every AddTerm/AddHierarchyLink call has completed.
func (s *MemStore) BuildSearchIndex() {
	s.searchIndex = s.searchIndex[:0]
	for code, t := range s.terms {
		var hierarchies []string
		for h, members := range s.members {
			if members[code] {
				hierarchies = append(hierarchies, h)
			}
		}
		sort.Strings(hierarchies)
		s.searchIndex = append(s.searchIndex, model.TermSummary{
			Code:            t.Code,
			ExtendedName:    t.ExtendedName,
			CommonNames:     t.CommonNames,
			ScientificNames: t.ScientificNames,
			TermType:        t.TermType,
			Deprecated:      t.Deprecated,
			Hierarchies:     hierarchies,
		})
	}
	sort.Slice(s.searchIndex, func(i, j int) bool { return s.searchIndex[i].Code < s.searchIndex[j].Code })
}

func (s *MemStore) LookupTerm(code string) *model.Term {
	return s.terms[code]
}

func (s *MemStore) ImplicitFacets(term *model.Term) []model.FacetRef {
	if term == nil {
		return nil
	}
	return s.facets[term.Code]
}

func (s *MemStore) Parent(code, hierarchy string) (string, bool) {
	p, ok := s.parents[hierarchy][code]
	return p, ok
}

func (s *MemStore) IsMember(code, hierarchy string) bool {
	return s.members[hierarchy][code]
}

// ancestorsInclusive walks the reporting hierarchy from code up to its root,
// returning code and every ancestor, closest first. A cycle (which loading
// should have already rejected via internal/graphcycle) breaks the walk
// rather than looping forever.
func (s *MemStore) ancestorsInclusive(code string) []string {
	seen := map[string]bool{code: true}
	chain := []string{code}
	cur := code
	for {
		parent, ok := s.parents[ReportingHierarchy][cur]
		if !ok || parent == "" || seen[parent] {
			break
		}
		chain = append(chain, parent)
		seen[parent] = true
		cur = parent
	}
	return chain
}

func (s *MemStore) ForbiddenProcessesFor(term *model.Term) map[string]bool {
	out := make(map[string]bool)
	if term == nil {
		return out
	}
	for _, ancestor := range s.ancestorsInclusive(term.Code) {
		for _, fp := range s.forbidden[ancestor] {
			out[fp.ProcessCode] = true
		}
	}
	return out
}

func (s *MemStore) ProcessOrdinal(processCode string, contextTerm *model.Term) model.Ordinal {
	if contextTerm == nil {
		return model.ZeroOrdinal
	}
	for _, ancestor := range s.ancestorsInclusive(contextTerm.Code) {
		if ord, ok := s.ordinals[ancestor][processCode]; ok {
			return ord
		}
	}
	return model.ZeroOrdinal
}

func (s *MemStore) Rule(id model.RuleID) model.RuleDefinition {
	if def, ok := s.rules[id]; ok {
		return def
	}
	return model.RuleDefinition{ID: id, Severity: model.SeverityLow}
}

func (s *MemStore) DehydrationDescriptors() map[string]bool {
	return s.dehydration
}

func (s *MemStore) DerivativeCreatingStates() map[string]bool {
	return s.derivativeCreates
}

// SearchTerms performs a case-insensitive substring search over term codes,
// extended names, and common names (supplemented feature, grounded on
// FoodEx2Database.search_terms in the original prototype). limit <= 0 means
// unbounded.
func (s *MemStore) SearchTerms(query string, limit int) []model.TermSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []model.TermSummary
	for _, t := range s.searchIndex {
		if strings.Contains(strings.ToLower(t.Code), q) ||
			strings.Contains(strings.ToLower(t.ExtendedName), q) ||
			strings.Contains(strings.ToLower(t.CommonNames), q) {
			out = append(out, t)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// RequireLoaded returns an infra error if the store has no terms, guarding
// callers against validating against an empty catalogue.
func (s *MemStore) RequireLoaded() error {
	if len(s.terms) == 0 {
		return efoodex2errors.New(efoodex2errors.ErrCatalogueNotLoaded, "catalogue store has no terms loaded")
	}
	return nil
}

var _ Store = (*MemStore)(nil)
