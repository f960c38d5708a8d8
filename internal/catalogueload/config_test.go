package catalogueload

import (
	"strings"
	"testing"

	"github.com/openfoodex/foodex2validator/internal/catalogue"
)

func TestLoadRuleSets(t *testing.T) {
	yamlDoc := "derivative_creating_states:\n  - A0BZS\n  - A0BZT\ndehydration_descriptors:\n  - A07XY\n"

	store := catalogue.New()
	if err := LoadRuleSets(strings.NewReader(yamlDoc), store); err != nil {
		t.Fatalf("LoadRuleSets: %v", err)
	}

	states := store.DerivativeCreatingStates()
	if !states["A0BZS"] || !states["A0BZT"] {
		t.Fatalf("DerivativeCreatingStates = %v", states)
	}
	dehydration := store.DehydrationDescriptors()
	if !dehydration["A07XY"] {
		t.Fatalf("DehydrationDescriptors = %v", dehydration)
	}
}

func TestLoadRuleSetsEmptyDocument(t *testing.T) {
	store := catalogue.New()
	if err := LoadRuleSets(strings.NewReader(""), store); err != nil {
		t.Fatalf("LoadRuleSets(empty): %v", err)
	}
}
