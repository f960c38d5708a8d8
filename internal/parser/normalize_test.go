package parser

import (
	"testing"

	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
)

func newNormalizeStore() *catalogue.MemStore {
	s := catalogue.New()
	s.AddTerm(&model.Term{Code: "A0B9Z", ExtendedName: "Apple", ImplicitFacets: "F01.A059P"})
	s.BuildSearchIndex()
	return s
}

func TestNormalizeStripsImplicitDuplicate(t *testing.T) {
	store := newNormalizeStore()
	expr, _ := Parse("A0B9Z#F01.A059P$F28.A07JS")

	cleaned, code, warning := Normalize(store, expr)

	if warning == nil {
		t.Fatalf("expected a warning for the stripped implicit facet")
	}
	if warning.Severity != model.SeverityHigh {
		t.Fatalf("severity = %v, want HIGH", warning.Severity)
	}
	if len(cleaned.Facets) != 1 || cleaned.Facets[0].Group != "F28" {
		t.Fatalf("cleaned facets = %v, want only F28", cleaned.Facets)
	}
	if code != "A0B9Z#F28.A07JS" {
		t.Fatalf("cleanedCode = %q", code)
	}
}

func TestNormalizeNoOpWhenNoDuplicate(t *testing.T) {
	store := newNormalizeStore()
	expr, _ := Parse("A0B9Z#F28.A07JS")

	cleaned, code, warning := Normalize(store, expr)

	if warning != nil {
		t.Fatalf("unexpected warning: %v", warning)
	}
	if code != "" {
		t.Fatalf("cleanedCode = %q, want empty when nothing stripped", code)
	}
	if len(cleaned.Facets) != 1 {
		t.Fatalf("cleaned facets = %v", cleaned.Facets)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	store := newNormalizeStore()
	expr, _ := Parse("A0B9Z#F01.A059P$F28.A07JS")
	cleaned, _, _ := Normalize(store, expr)

	_, _, second := Normalize(store, cleaned)
	if second != nil {
		t.Fatalf("normalizing an already-cleaned code should emit no warning, got %v", second)
	}
}

func TestNormalizeNilExpression(t *testing.T) {
	store := newNormalizeStore()
	cleaned, code, warning := Normalize(store, nil)
	if cleaned != nil || code != "" || warning != nil {
		t.Fatalf("Normalize(nil) = (%v, %q, %v), want all zero", cleaned, code, warning)
	}
}
