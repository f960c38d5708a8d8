package catalogueload

import (
	"io"

	"gopkg.in/yaml.v3"

	foodex2errors "github.com/openfoodex/foodex2validator/errors"
	"github.com/openfoodex/foodex2validator/internal/catalogue"
)

// RuleSetsConfig carries the literal descriptor sets the specification
// treats as catalogue-driven configuration rather than hard-coded (spec.md
// §9, Open Questions): BR13's derivative-creating physical states and
// BR28's dehydration-indicating implicit processes.
type RuleSetsConfig struct {
	DerivativeCreatingStates []string `yaml:"derivative_creating_states"`
	DehydrationDescriptors   []string `yaml:"dehydration_descriptors"`
}

// LoadRuleSets parses a RuleSetsConfig from YAML and installs it on store.
func LoadRuleSets(r io.Reader, store *catalogue.MemStore) error {
	var cfg RuleSetsConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return foodex2errors.Newf(foodex2errors.ErrReferenceTableMissing, "parsing rule-sets configuration", "%v", err)
	}
	store.SetDerivativeCreatingStates(cfg.DerivativeCreatingStates)
	store.SetDehydrationDescriptors(cfg.DehydrationDescriptors)
	return nil
}
