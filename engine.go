// Package foodex2 validates EFSA FoodEx2 food-classification expressions
// against a loaded catalogue of terms, hierarchies, and business rules.
package foodex2

import (
	"context"
	"os"

	foodex2errors "github.com/openfoodex/foodex2validator/errors"
	"github.com/openfoodex/foodex2validator/internal/aggregate"
	"github.com/openfoodex/foodex2validator/internal/batch"
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/catalogueload"
	"github.com/openfoodex/foodex2validator/internal/hierarchy"
)

// Engine holds an immutable, loaded catalogue and answers Validate calls
// against it. An Engine is safe for concurrent use by multiple goroutines
// (spec.md §5): nothing on it mutates after Load returns.
type Engine struct {
	store    catalogue.Store
	resolver *hierarchy.Resolver
	opts     engineOptions
}

// Load opens the SQLite catalogue database at dsn and builds an Engine
// from it. An unreadable catalogue is a fatal, infrastructural error
// (spec.md §4.1, §7).
func Load(dsn string, opts ...LoadOption) (*Engine, error) {
	store, err := catalogueload.LoadSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return newEngine(store, opts), nil
}

// LoadWithRuleSets behaves like Load but also installs the catalogue-driven
// literal sets BR13 and BR28 depend on (spec.md §9) from a YAML rule-sets
// file at ruleSetsPath.
func LoadWithRuleSets(dsn, ruleSetsPath string, opts ...LoadOption) (*Engine, error) {
	store, err := catalogueload.LoadSQLite(dsn)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(ruleSetsPath)
	if err != nil {
		return nil, foodex2errors.Newf(foodex2errors.ErrReferenceTableMissing, "opening rule-sets configuration", "path=%s: %v", ruleSetsPath, err)
	}
	defer f.Close()
	if err := catalogueload.LoadRuleSets(f, store); err != nil {
		return nil, err
	}
	return newEngine(store, opts), nil
}

func newEngine(store *catalogue.MemStore, opts []LoadOption) *Engine {
	options := defaultEngineOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Engine{
		store:    store,
		resolver: hierarchy.NewResolver(store),
		opts:     options,
	}
}

// Validate checks a single FoodEx2 expression against the loaded catalogue
// (spec.md §6). It never returns an error for an expression-level fault;
// every fault is reported as a Warning inside the returned Result. A
// non-nil error indicates an infrastructural failure only.
func (e *Engine) Validate(expression string, opts ...ValidateOption) (*Result, error) {
	options := e.opts
	for _, opt := range opts {
		opt(&options)
	}

	internal, err := aggregate.Validate(e.store, e.resolver, expression, options.toAggregate())
	if err != nil {
		return nil, err
	}
	return toResult(internal), nil
}

// ValidateBatch validates every expression in expressions with a bounded
// degree of parallelism, preserving input order (spec.md §5). concurrency
// <= 0 uses batch.DefaultConcurrency.
func (e *Engine) ValidateBatch(ctx context.Context, expressions []string, concurrency int, opts ...ValidateOption) ([]*Result, error) {
	return batch.Run(ctx, expressions, concurrency, func(_ context.Context, expression string) (*Result, error) {
		return e.Validate(expression, opts...)
	})
}

// SearchTerms performs a free-text search over the loaded catalogue
// (supplemented feature, spec.md §9's "Supplement dropped features"
// intent, grounded on the original prototype's search_terms).
func (e *Engine) SearchTerms(query string, limit int) []TermSummary {
	summaries := e.store.SearchTerms(query, limit)
	out := make([]TermSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, TermSummary{
			Code:            s.Code,
			ExtendedName:    s.ExtendedName,
			CommonNames:     s.CommonNames,
			ScientificNames: s.ScientificNames,
			TermType:        s.TermType.String(),
			Deprecated:      s.Deprecated,
			Hierarchies:     s.Hierarchies,
		})
	}
	return out
}

// HierarchyPath returns the breadcrumb from code up to the root of
// hierarchy (supplemented feature, spec.md §9, grounded on the original
// prototype's get_hierarchy_path).
func (e *Engine) HierarchyPath(code, hierarchy string) ([]string, error) {
	return e.resolver.HierarchyPath(code, hierarchy)
}
