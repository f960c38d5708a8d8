// Package hierarchy answers ancestor/descendant/membership questions over
// the catalogue's parent-link tables, memoizing each chain the first time
// it is walked (spec.md §4.3).
package hierarchy

import (
	"sync"

	foodex2errors "github.com/openfoodex/foodex2validator/errors"
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/state"
)

// maxDepth bounds ancestor traversal. A valid catalogue never approaches
// this; hitting it means a cycle slipped past load-time validation.
const maxDepth = 64

type cacheKey struct {
	code      string
	hierarchy string
}

// Resolver answers hierarchy queries against a catalogue.Store, caching the
// full ancestor chain for every (code, hierarchy) pair it is asked about.
// A Resolver is safe for concurrent use; the cache is guarded by mu and its
// entries are immutable once written.
type Resolver struct {
	store catalogue.Store

	mu    sync.RWMutex
	cache map[cacheKey][]string
}

// NewResolver builds a Resolver over store. The returned Resolver holds no
// reference to any request-scoped state and may be shared across every
// concurrent Validate call.
func NewResolver(store catalogue.Store) *Resolver {
	return &Resolver{store: store, cache: make(map[cacheKey][]string)}
}

// Ancestors returns every ancestor of code in hierarchy, closest first,
// excluding code itself. The result is memoized.
func (r *Resolver) Ancestors(code, hierarchy string) ([]string, error) {
	key := cacheKey{code, hierarchy}

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	chain, err := r.walk(code, hierarchy)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = chain
	r.mu.Unlock()

	return chain, nil
}

// walk performs the iterative, non-recursive parent-link traversal using a
// StateStack as scratch space, so the chain can be built once and reused
// (rather than recursing per ancestor).
func (r *Resolver) walk(code, hierarchy string) ([]string, error) {
	stack := state.NewStateStack[string](8)
	seen := map[string]bool{code: true}

	cur := code
	for depth := 0; depth < maxDepth; depth++ {
		parent, ok := r.store.Parent(cur, hierarchy)
		if !ok || parent == "" {
			break
		}
		if seen[parent] {
			return nil, foodex2errors.Newf(foodex2errors.ErrHierarchyCycle,
				"cycle detected in hierarchy traversal", "hierarchy=%s code=%s revisited=%s", hierarchy, code, parent)
		}
		stack.Push(parent)
		seen[parent] = true
		cur = parent
	}

	if stack.Len() == maxDepth {
		return nil, foodex2errors.Newf(foodex2errors.ErrHierarchyCycle,
			"ancestor chain exceeds maximum traversal depth", "hierarchy=%s code=%s maxDepth=%d", hierarchy, code, maxDepth)
	}

	chain := make([]string, 0, stack.Len())
	items := stack.Items()
	for i := 0; i < len(items); i++ {
		chain = append(chain, items[i])
	}
	return chain, nil
}

// IsAncestor reports whether candidate is a strict ancestor of descendant in
// hierarchy. The relation is irreflexive: IsAncestor(x, x, h) is always
// false, even if x has a self-referential parent link (which walk rejects
// as a cycle before this is ever reached).
func (r *Resolver) IsAncestor(candidate, descendant, hierarchy string) (bool, error) {
	if candidate == descendant {
		return false, nil
	}
	ancestors, err := r.Ancestors(descendant, hierarchy)
	if err != nil {
		return false, err
	}
	for _, a := range ancestors {
		if a == candidate {
			return true, nil
		}
	}
	return false, nil
}

// IsChildOfAny reports whether descendant descends from any of candidates
// in hierarchy (descendant included among candidates counts as false,
// consistent with IsAncestor's irreflexivity).
func (r *Resolver) IsChildOfAny(descendant string, candidates []string, hierarchy string) (bool, error) {
	for _, c := range candidates {
		ok, err := r.IsAncestor(c, descendant, hierarchy)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// IsParentOf reports whether parent is the direct parent of child.
func (r *Resolver) IsParentOf(parent, child, hierarchy string) bool {
	p, ok := r.store.Parent(child, hierarchy)
	return ok && p == parent
}

// AreSiblings reports whether a and b are distinct terms sharing a direct
// parent in hierarchy.
func (r *Resolver) AreSiblings(a, b, hierarchy string) bool {
	if a == b {
		return false
	}
	pa, okA := r.store.Parent(a, hierarchy)
	pb, okB := r.store.Parent(b, hierarchy)
	return okA && okB && pa == pb
}

// HierarchyPath returns the breadcrumb from code up to its root in
// hierarchy, code first and the root-most ancestor last (supplemented
// feature, grounded on FoodEx2Database.get_hierarchy_path in the original
// prototype).
func (r *Resolver) HierarchyPath(code, hierarchy string) ([]string, error) {
	ancestors, err := r.Ancestors(code, hierarchy)
	if err != nil {
		return nil, err
	}
	path := make([]string, 0, len(ancestors)+1)
	path = append(path, code)
	path = append(path, ancestors...)
	return path, nil
}
