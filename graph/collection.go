package graph

// Collection is the mutation-aware wrapper bound to one edge-valued
// predicate of one owner instance. It holds the live backing array and
// its own added-element set, which starts empty at construction: a
// collection installed by a predicate write always begins with a fresh
// diff baseline, independent of any prior collection on the same
// property.
//
// Elements are *Instance values for node-valued predicates and plain
// scalars for scalar-valued ones; either way the added-set and the
// facet bindings compare elements by identity, never by structure.
type Collection struct {
	scope    string // predicate property name
	owner    *Instance
	facets   *FacetStore
	elems    []any
	added    []any
	addedSet map[any]struct{}
	staged   *Instance // facet staged for the next Add
}

// NewCollection returns an empty collection bound to the given scope
// key and owner, with facet bindings resolved through fs.
func NewCollection(fs *FacetStore, scope string, owner *Instance) *Collection {
	return newCollection(fs, scope, owner, nil)
}

func newCollection(fs *FacetStore, scope string, owner *Instance, elems []any) *Collection {
	return &Collection{
		scope:    scope,
		owner:    owner,
		facets:   fs,
		elems:    elems,
		addedSet: make(map[any]struct{}),
	}
}

// WithFacet stages facet to be attached to the next element added and
// returns the collection for chaining.
func (c *Collection) WithFacet(facet *Instance) *Collection {
	c.staged = facet
	return c
}

// Add appends el to the collection and records it in the added-set. A
// staged facet is attached to (scope, owner, el) and the stage is
// cleared.
func (c *Collection) Add(el any) {
	if c.staged != nil {
		c.facets.Attach(c.scope, c.owner, el, c.staged)
		c.staged = nil
	}
	c.elems = append(c.elems, el)
	if _, ok := c.addedSet[el]; !ok {
		c.addedSet[el] = struct{}{}
		c.added = append(c.added, el)
	}
}

// Update rewrites the facet binding of an element already in the
// collection. With no staged facet it is a removal: any existing
// binding for el is detached. With a staged facet the binding is
// replaced; unlike Add, the stage is not cleared.
func (c *Collection) Update(el any) {
	if c.staged == nil {
		c.facets.Detach(c.scope, c.owner, el)
		return
	}
	c.facets.Attach(c.scope, c.owner, el, c.staged)
}

// Get returns the current elements in insertion order. The returned
// slice is a copy; mutating it does not affect the collection.
func (c *Collection) Get() []any {
	out := make([]any, len(c.elems))
	copy(out, c.elems)
	return out
}

// Facet returns the facet bound to el under the collection's scope.
func (c *Collection) Facet(el any) (*Instance, bool) {
	return c.facets.Get(c.scope, c.owner, el)
}

// Diff returns the elements added since construction, in first-added
// order.
func (c *Collection) Diff() []any {
	out := make([]any, len(c.added))
	copy(out, c.added)
	return out
}

// Len returns the number of elements in the collection.
func (c *Collection) Len() int {
	return len(c.elems)
}

// Detach is declared for API completeness and fails with
// ErrNotImplemented: element removal has no defined mutation contract.
func (c *Collection) Detach(el any) error {
	return ErrNotImplemented
}

// Delete is declared for API completeness and fails with
// ErrNotImplemented: element removal has no defined mutation contract.
func (c *Collection) Delete(el any) error {
	return ErrNotImplemented
}

// purge resets the added-set, establishing a new diff baseline.
func (c *Collection) purge() {
	c.added = nil
	c.addedSet = make(map[any]struct{})
}
