package foodex2

import "github.com/openfoodex/foodex2validator/internal/aggregate"

// engineOptions accumulates the configuration Load and Validate calls may
// override, functional-options style: each option is a plain function that
// mutates a private struct, so new knobs can be added without breaking
// existing call sites.
type engineOptions struct {
	highIsBlocking             bool
	skipRulesOnStructuralError bool
}

func defaultEngineOptions() engineOptions {
	def := aggregate.DefaultOptions()
	return engineOptions{
		highIsBlocking:             def.HighIsBlocking,
		skipRulesOnStructuralError: def.SkipRulesOnStructuralError,
	}
}

func (o engineOptions) toAggregate() aggregate.Options {
	return aggregate.Options{
		HighIsBlocking:             o.highIsBlocking,
		SkipRulesOnStructuralError: o.skipRulesOnStructuralError,
	}
}

// LoadOption configures an Engine at load time.
type LoadOption func(*engineOptions)

// ValidateOption configures a single Validate or ValidateBatch call,
// overriding whatever the Engine was loaded with.
type ValidateOption func(*engineOptions)

// WithHighNonBlocking downgrades HIGH-severity warnings so they no longer
// mark a result invalid; only ERROR remains blocking (spec.md §4.6, §9).
// The returned function's unnamed type is assignable to both LoadOption and
// ValidateOption, so it works as either a Load or a Validate option.
func WithHighNonBlocking() func(*engineOptions) {
	return func(o *engineOptions) { o.highIsBlocking = false }
}

// WithRulesOnStructuralError forces rule evaluation to run even when a
// structural ERROR is present, instead of the default skip-and-return.
func WithRulesOnStructuralError() func(*engineOptions) {
	return func(o *engineOptions) { o.skipRulesOnStructuralError = false }
}
