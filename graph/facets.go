package graph

// facetKey identifies one facet binding. The owner is compared by
// pointer identity and the child by Go identity/equality semantics, so
// two structurally equal but distinct instances never collide, and
// bindings under different scope keys never alias.
type facetKey struct {
	scope string
	owner *Instance
	child any
}

// FacetStore is the identity-keyed association table holding facet
// instances per (scope key, owner, child) triple. It has no locking;
// all access is synchronous by contract. Lifetime coupling is explicit:
// callers release an instance's bindings with Dispose.
type FacetStore struct {
	bindings map[facetKey]*Instance
}

// NewFacetStore returns an empty facet store.
func NewFacetStore() *FacetStore {
	return &FacetStore{bindings: make(map[facetKey]*Instance)}
}

// Attach binds facet to the (scope, owner, child) triple, replacing any
// existing binding wholesale.
func (s *FacetStore) Attach(scope string, owner *Instance, child any, facet *Instance) {
	s.bindings[facetKey{scope: scope, owner: owner, child: child}] = facet
}

// Get returns the facet bound to the triple, if any.
func (s *FacetStore) Get(scope string, owner *Instance, child any) (*Instance, bool) {
	f, ok := s.bindings[facetKey{scope: scope, owner: owner, child: child}]
	return f, ok
}

// Detach removes the binding for the triple. No-op when absent.
func (s *FacetStore) Detach(scope string, owner *Instance, child any) {
	delete(s.bindings, facetKey{scope: scope, owner: owner, child: child})
}

// Dispose drops every binding in which inst participates as owner or
// child. This is the explicit lifecycle hook that keeps the store from
// extending an instance's lifetime.
func (s *FacetStore) Dispose(inst *Instance) {
	for k := range s.bindings {
		if k.owner == inst || k.child == any(inst) {
			delete(s.bindings, k)
		}
	}
}

// Len returns the number of live bindings.
func (s *FacetStore) Len() int {
	return len(s.bindings)
}
