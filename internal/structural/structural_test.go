package structural

import (
	"testing"

	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
	"github.com/openfoodex/foodex2validator/internal/parser"
	"github.com/openfoodex/foodex2validator/internal/rules"
)

func newTestStore() *catalogue.MemStore {
	s := catalogue.New()
	for _, def := range rules.DefaultDefinitions() {
		s.AddRule(def)
	}
	s.AddTerm(&model.Term{Code: "A0B9Z", ExtendedName: "Apple"})
	s.AddTerm(&model.Term{Code: "A07JS", ExtendedName: "Freezing"})
	s.AddTerm(&model.Term{Code: "A0F6E", ExtendedName: "Wild"})
	s.AddHierarchyLink("process", "A07JS", "")
	s.AddHierarchyLink("source", "A0F6E", "")
	s.BuildSearchIndex()
	return s
}

func TestValidateAcceptsWellFormedExpression(t *testing.T) {
	store := newTestStore()
	expr, _ := parser.Parse("A0B9Z#F28.A07JS$F01.A0F6E")
	warnings := Validate(store, expr)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestValidateBaseNotFound(t *testing.T) {
	store := newTestStore()
	expr, _ := parser.Parse("ZZZZZ")
	warnings := Validate(store, expr)
	if len(warnings) != 1 || warnings[0].Rule != model.RuleBaseNotFound {
		t.Fatalf("warnings = %v, want single VBA-NOTFOUND", warnings)
	}
}

func TestValidateFacetNotFound(t *testing.T) {
	store := newTestStore()
	expr, _ := parser.Parse("A0B9Z#F28.ZZZZZ")
	warnings := Validate(store, expr)
	if len(warnings) != 1 || warnings[0].Rule != model.RuleFacetNotFound {
		t.Fatalf("warnings = %v, want single VBA-FACET404", warnings)
	}
}

func TestValidateCategoryMismatch(t *testing.T) {
	store := newTestStore()
	// A0F6E exists but is only a member of "source", not "process" (F28's hierarchy).
	expr, _ := parser.Parse("A0B9Z#F28.A0F6E")
	warnings := Validate(store, expr)
	if len(warnings) != 1 || warnings[0].Rule != model.RuleCategoryInvalid {
		t.Fatalf("warnings = %v, want single VBA-CATEGORY", warnings)
	}
}

func TestValidateCardinalityViolation(t *testing.T) {
	store := newTestStore()
	store.AddTerm(&model.Term{Code: "AAAAA", ExtendedName: "State X"})
	store.AddTerm(&model.Term{Code: "BBBBB", ExtendedName: "State Y"})
	store.AddHierarchyLink("state", "AAAAA", "")
	store.AddHierarchyLink("state", "BBBBB", "")
	expr, _ := parser.Parse("A0B9Z#F03.AAAAA$F03.BBBBB")
	warnings := Validate(store, expr)
	found := false
	for _, w := range warnings {
		if w.Rule == model.RuleCardinality {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected VBA-CARDINALITY, got %v", warnings)
	}
}

func TestValidateDuplicateFacet(t *testing.T) {
	store := newTestStore()
	expr, _ := parser.Parse("A0B9Z#F28.A07JS$F28.A07JS")
	warnings := Validate(store, expr)
	found := false
	for _, w := range warnings {
		if w.Rule == model.RuleDuplicate {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected VBA-DUPLICATE, got %v", warnings)
	}
}

func TestDuplicateDetectionSymmetricUnderPermutation(t *testing.T) {
	store := newTestStore()
	a, _ := parser.Parse("A0B9Z#F28.A07JS$F28.A07JS$F01.A0F6E")
	b, _ := parser.Parse("A0B9Z#F01.A0F6E$F28.A07JS$F28.A07JS")

	wa := Validate(store, a)
	wb := Validate(store, b)

	countDup := func(ws []model.Warning) int {
		n := 0
		for _, w := range ws {
			if w.Rule == model.RuleDuplicate {
				n++
			}
		}
		return n
	}
	if countDup(wa) != countDup(wb) {
		t.Fatalf("duplicate count depends on input order: %d vs %d", countDup(wa), countDup(wb))
	}
}
