// Package schema holds the metadata registry that drives the object
// mapper and the schema builder: per-type property, predicate and facet
// descriptors, stored in first-registration order.
//
// The registry is populated once, during a single-threaded declaration
// phase that completes before any transform or build call. After that it
// is read-only; the only later mutation is Reset, which exists for test
// isolation.
package schema

// Kind is the scalar kind of a property or a scalar-valued predicate.
type Kind int

// Scalar kinds supported by the schema. Each maps to one Dgraph scalar
// type name.
const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDateTime
	KindGeo
	KindPassword
	KindUID
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDateTime: "datetime",
	KindGeo:      "geo",
	KindPassword: "password",
	KindUID:      "uid",
}

// String returns the Dgraph type name of the kind.
func (k Kind) String() string {
	if k < KindInvalid || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// ParseKind returns the kind named by the Dgraph type name s. The
// second return value reports whether s names a scalar kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if Kind(k) != KindInvalid && name == s {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// Valid reports whether k is a declarable scalar kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && int(k) < len(kindNames)
}

// Property describes one scalar property of a node type.
type Property struct {
	// Name is the property name on the instance.
	Name string
	// External is the serialized predicate name. Empty means the name is
	// generated as "<TypeName>.<Name>".
	External string
	// Kind is the scalar kind of the property value.
	Kind Kind
	// List marks the property as array-valued.
	List bool
	// Index is the index kind declared for the property ("hash", "exact",
	// "term", ...). Empty means no index.
	Index string
}

// Predicate describes one edge-valued or scalar-valued predicate of a
// node type.
type Predicate struct {
	// Name is the predicate property name on the instance.
	Name string
	// External is the serialized predicate name. Empty means the name is
	// generated as "<TypeName>.<Name>".
	External string
	// Target is the node type name the predicate points to. Empty for
	// scalar-valued predicates.
	Target string
	// Kind is the scalar kind for scalar-valued predicates. KindInvalid
	// for node-valued predicates.
	Kind Kind
	// List is the cardinality: true for arrays, false for a single value.
	List bool
	// Facet is the facet type name associated with the predicate's edges,
	// or empty.
	Facet string
}

// Facet describes one facet field, registered against a facet type.
type Facet struct {
	// Name is the facet field name.
	Name string
	// Predicate is the owning predicate name the facet rides on.
	Predicate string
}

// Type is the descriptor of one node (or facet) type: its name and the
// declared members in declaration order.
type Type struct {
	Name       string
	UIDField   string // property name holding the uid, empty if none
	Properties []*Property
	Predicates []*Predicate
	Facets     []*Facet
}

// Registry is the process-wide store of type descriptors. Additions are
// append-only in declaration order and lookups return that order
// unchanged; the schema builder's output determinism depends on it.
type Registry struct {
	order []string
	types map[string]*Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// typeOf returns the descriptor for name, creating it on first use.
func (r *Registry) typeOf(name string) *Type {
	t, ok := r.types[name]
	if !ok {
		t = &Type{Name: name}
		r.types[name] = t
		r.order = append(r.order, name)
	}
	return t
}

// AddProperty appends a property descriptor to the named type. A
// property of KindUID is recorded as the type's uid field instead of
// being appended to the property list.
func (r *Registry) AddProperty(typeName string, p *Property) {
	t := r.typeOf(typeName)
	if p.Kind == KindUID {
		t.UIDField = p.Name
		return
	}
	t.Properties = append(t.Properties, p)
}

// AddPredicate appends a predicate descriptor to the named type.
func (r *Registry) AddPredicate(typeName string, p *Predicate) {
	t := r.typeOf(typeName)
	t.Predicates = append(t.Predicates, p)
}

// AddFacet appends a facet descriptor to the named facet type.
func (r *Registry) AddFacet(facetTypeName string, f *Facet) {
	t := r.typeOf(facetTypeName)
	t.Facets = append(t.Facets, f)
}

// Type returns the descriptor registered under name, or nil.
func (r *Registry) Type(name string) *Type {
	return r.types[name]
}

// Types returns all registered type descriptors in first-registration
// order.
func (r *Registry) Types() []*Type {
	out := make([]*Type, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.types[name])
	}
	return out
}

// PropertiesOf returns the declared properties of the named type in
// declaration order, or nil if the type is unknown.
func (r *Registry) PropertiesOf(typeName string) []*Property {
	if t, ok := r.types[typeName]; ok {
		return t.Properties
	}
	return nil
}

// PredicatesOf returns the declared predicates of the named type in
// declaration order, or nil if the type is unknown.
func (r *Registry) PredicatesOf(typeName string) []*Predicate {
	if t, ok := r.types[typeName]; ok {
		return t.Predicates
	}
	return nil
}

// FacetsOf returns the facet fields declared on the named facet type in
// declaration order, or nil if the type is unknown.
func (r *Registry) FacetsOf(facetTypeName string) []*Facet {
	if t, ok := r.types[facetTypeName]; ok {
		return t.Facets
	}
	return nil
}

// Reset drops every registered type. Test isolation only.
func (r *Registry) Reset() {
	r.order = nil
	r.types = make(map[string]*Type)
}

// global is the default registry used by the package-level helpers. The
// declaration phase is single-threaded by contract, so no locking.
var global = NewRegistry()

// Default returns the process-wide default registry.
func Default() *Registry { return global }

// AddProperty appends a property descriptor on the default registry.
func AddProperty(typeName string, p *Property) { global.AddProperty(typeName, p) }

// AddPredicate appends a predicate descriptor on the default registry.
func AddPredicate(typeName string, p *Predicate) { global.AddPredicate(typeName, p) }

// AddFacet appends a facet descriptor on the default registry.
func AddFacet(facetTypeName string, f *Facet) { global.AddFacet(facetTypeName, f) }

// PropertiesOf returns declared properties from the default registry.
func PropertiesOf(typeName string) []*Property { return global.PropertiesOf(typeName) }

// PredicatesOf returns declared predicates from the default registry.
func PredicatesOf(typeName string) []*Predicate { return global.PredicatesOf(typeName) }

// FacetsOf returns declared facet fields from the default registry.
func FacetsOf(facetTypeName string) []*Facet { return global.FacetsOf(facetTypeName) }

// Reset drops every type from the default registry. Test isolation only.
func Reset() { global.Reset() }
