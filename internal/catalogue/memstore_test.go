package catalogue

import (
	"testing"

	"github.com/openfoodex/foodex2validator/internal/model"
)

func newTestStore() *MemStore {
	s := New()
	s.AddTerm(&model.Term{Code: "A01AA", ExtendedName: "Root group", TermType: model.TermTypeGroup, DetailLevel: "H"})
	s.AddTerm(&model.Term{Code: "A01BB", ExtendedName: "Mid group", TermType: model.TermTypeGroup})
	s.AddTerm(&model.Term{Code: "A01CC", ExtendedName: "Fresh apple", TermType: model.TermTypeRaw,
		ImplicitFacets: "F01.A059P$F27.A000A"})
	s.AddHierarchyLink(ReportingHierarchy, "A01BB", "A01AA")
	s.AddHierarchyLink(ReportingHierarchy, "A01CC", "A01BB")
	s.AddHierarchyLink(ReportingHierarchy, "A01AA", "")
	s.AddForbiddenProcess(model.ForbiddenProcess{
		RootGroupCode: "A01AA",
		ProcessCode:   "A07KQ",
		OrdinalCode:   model.Ordinal{IntegerPart: 1},
	})
	s.AddRule(model.RuleDefinition{ID: model.BR01, Message: "base term must not be deprecated", Severity: model.SeverityError})
	s.BuildSearchIndex()
	return s
}

func TestLookupTerm(t *testing.T) {
	s := newTestStore()
	if got := s.LookupTerm("A01CC"); got == nil || got.ExtendedName != "Fresh apple" {
		t.Fatalf("LookupTerm(A01CC) = %v", got)
	}
	if got := s.LookupTerm("MISSING"); got != nil {
		t.Fatalf("LookupTerm(MISSING) = %v, want nil", got)
	}
}

func TestImplicitFacets(t *testing.T) {
	s := newTestStore()
	term := s.LookupTerm("A01CC")
	facets := s.ImplicitFacets(term)
	want := []model.FacetRef{{Group: "F01", Descriptor: "A059P"}, {Group: "F27", Descriptor: "A000A"}}
	if len(facets) != len(want) {
		t.Fatalf("ImplicitFacets = %v, want %v", facets, want)
	}
	for i, f := range facets {
		if f != want[i] {
			t.Fatalf("ImplicitFacets[%d] = %v, want %v", i, f, want[i])
		}
	}
}

func TestParentAndMembership(t *testing.T) {
	s := newTestStore()
	parent, ok := s.Parent("A01CC", ReportingHierarchy)
	if !ok || parent != "A01BB" {
		t.Fatalf("Parent(A01CC) = (%q, %v), want (A01BB, true)", parent, ok)
	}
	if _, ok := s.Parent("A01AA", ReportingHierarchy); ok {
		t.Fatalf("Parent(A01AA) should have no parent")
	}
	if !s.IsMember("A01AA", ReportingHierarchy) {
		t.Fatalf("A01AA should be a member of %s", ReportingHierarchy)
	}
	if s.IsMember("A01AA", "other") {
		t.Fatalf("A01AA should not be a member of an unrelated hierarchy")
	}
}

func TestForbiddenProcessesInheritedFromAncestor(t *testing.T) {
	s := newTestStore()
	leaf := s.LookupTerm("A01CC")
	forbidden := s.ForbiddenProcessesFor(leaf)
	if !forbidden["A07KQ"] {
		t.Fatalf("expected A07KQ inherited from ancestor A01AA, got %v", forbidden)
	}
}

func TestProcessOrdinalWalksAncestry(t *testing.T) {
	s := newTestStore()
	leaf := s.LookupTerm("A01CC")
	ord := s.ProcessOrdinal("A07KQ", leaf)
	if ord.IntegerPart != 1 {
		t.Fatalf("ProcessOrdinal = %+v, want IntegerPart 1", ord)
	}
	if got := s.ProcessOrdinal("UNKNOWN", leaf); !got.IsZero() {
		t.Fatalf("ProcessOrdinal(unknown) = %+v, want zero", got)
	}
}

func TestRuleFallsBackWhenUnregistered(t *testing.T) {
	s := newTestStore()
	def := s.Rule(model.BR01)
	if def.Message == "" || def.Severity != model.SeverityError {
		t.Fatalf("Rule(BR01) = %+v", def)
	}
	fallback := s.Rule(model.BR03)
	if fallback.ID != model.BR03 || fallback.Severity != model.SeverityLow {
		t.Fatalf("unregistered Rule fallback = %+v", fallback)
	}
}

func TestSearchTerms(t *testing.T) {
	s := newTestStore()
	results := s.SearchTerms("apple", 0)
	if len(results) != 1 || results[0].Code != "A01CC" {
		t.Fatalf("SearchTerms(apple) = %v", results)
	}
	if got := s.SearchTerms("", 0); got != nil {
		t.Fatalf("SearchTerms(empty) = %v, want nil", got)
	}
	if got := s.SearchTerms("group", 1); len(got) != 1 {
		t.Fatalf("SearchTerms(group, limit 1) = %v, want 1 result", got)
	}
}

func TestValidateAcyclicAcceptsCleanHierarchy(t *testing.T) {
	s := newTestStore()
	if err := s.ValidateAcyclic(); err != nil {
		t.Fatalf("ValidateAcyclic() = %v, want nil", err)
	}
}

func TestValidateAcyclicDetectsCycle(t *testing.T) {
	s := New()
	s.AddHierarchyLink(ReportingHierarchy, "X01AA", "X01BB")
	s.AddHierarchyLink(ReportingHierarchy, "X01BB", "X01AA")

	if err := s.ValidateAcyclic(); err == nil {
		t.Fatal("ValidateAcyclic() = nil, want an error for the A->B->A cycle")
	}
}

func TestRequireLoaded(t *testing.T) {
	empty := New()
	if err := empty.RequireLoaded(); err == nil {
		t.Fatalf("RequireLoaded() on empty store should error")
	}
	loaded := newTestStore()
	if err := loaded.RequireLoaded(); err != nil {
		t.Fatalf("RequireLoaded() = %v, want nil", err)
	}
}
