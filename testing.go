package foodex2

import "github.com/openfoodex/foodex2validator/internal/catalogue"

// NewEngineForTesting builds an Engine directly from an in-memory store,
// bypassing SQLite loading. Intended for tests in this module's other
// packages (e.g. internal/httpapi) that need a seeded Engine without a
// database fixture.
func NewEngineForTesting(store *catalogue.MemStore, opts ...LoadOption) *Engine {
	return newEngine(store, opts)
}
