package parser

import (
	"testing"

	"github.com/openfoodex/foodex2validator/internal/model"
)

func TestParseWellFormed(t *testing.T) {
	expr, warnings := Parse("A0B9Z#F28.A07JS$F01.A0F6E")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if expr.Base != "A0B9Z" {
		t.Fatalf("Base = %q, want A0B9Z", expr.Base)
	}
	want := []model.FacetRef{{Group: "F28", Descriptor: "A07JS"}, {Group: "F01", Descriptor: "A0F6E"}}
	if len(expr.Facets) != len(want) {
		t.Fatalf("Facets = %v, want %v", expr.Facets, want)
	}
	for i, f := range expr.Facets {
		if f != want[i] {
			t.Fatalf("Facets[%d] = %v, want %v", i, f, want[i])
		}
	}
}

func TestParseBareBase(t *testing.T) {
	expr, warnings := Parse("A0B9Z")
	if len(warnings) != 0 {
		t.Fatalf("bare base should never yield a structural error, got %v", warnings)
	}
	if expr.Base != "A0B9Z" || len(expr.Facets) != 0 {
		t.Fatalf("Parse(bare) = %+v", expr)
	}
}

func TestParseMalformedBase(t *testing.T) {
	for _, raw := range []string{"", "AB", "a0b9z", "A0B9Z!"} {
		expr, warnings := Parse(raw)
		if expr != nil {
			t.Fatalf("Parse(%q) expr = %+v, want nil", raw, expr)
		}
		if len(warnings) != 1 || warnings[0].Rule != model.RuleStructBase {
			t.Fatalf("Parse(%q) warnings = %v, want single STRUCT_BASE", raw, warnings)
		}
	}
}

func TestParseMalformedFacetSkipsAndContinues(t *testing.T) {
	expr, warnings := Parse("A0B9Z#F28.BAD$F01.A0F6E")
	if len(warnings) != 1 || warnings[0].Rule != model.RuleStructFacet {
		t.Fatalf("warnings = %v, want single STRUCT_FACET", warnings)
	}
	if len(expr.Facets) != 1 || expr.Facets[0] != (model.FacetRef{Group: "F01", Descriptor: "A0F6E"}) {
		t.Fatalf("Facets = %v, want only the well-formed fragment", expr.Facets)
	}
}

func TestParseAcceptsEitherSeparatorAnywhere(t *testing.T) {
	a, _ := Parse("A0B9Z#F28.A07JS#F01.A0F6E")
	b, _ := Parse("A0B9Z$F28.A07JS$F01.A0F6E")
	if len(a.Facets) != 2 || len(b.Facets) != 2 {
		t.Fatalf("both separators must be accepted anywhere: %v / %v", a.Facets, b.Facets)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	raw := "A0B9Z#F28.A07JS$F01.A0F6E"
	expr, _ := Parse(raw)
	if got := Serialize(expr); got != raw {
		t.Fatalf("Serialize(Parse(%q)) = %q", raw, got)
	}
}

func TestSerializeNil(t *testing.T) {
	if got := Serialize(nil); got != "" {
		t.Fatalf("Serialize(nil) = %q, want empty", got)
	}
}
