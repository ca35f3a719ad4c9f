package graph

import (
	"time"

	"github.com/andrejpavlovic/dgraph-orm/schema"
)

// Reserved record fields of the graph-query result convention.
const (
	// UIDField is the uid field present on every persisted record.
	UIDField = "uid"
	// TypeTag is the reserved type-tag field; its array value names the
	// record's Dgraph types and is never treated as an edge.
	TypeTag = "dgraph.type"
)

// Record is a raw node record: the string-keyed field map a graph query
// returns for one node.
type Record = map[string]any

// Instance is one materialized typed object. Scalar properties are read
// and written through Get/Set so that the diff tracker observes every
// post-load assignment; edge-valued predicates go through the
// Predicate/SetPredicate accessor pair.
type Instance struct {
	mapper      *Mapper
	typ         *schema.Type
	uid         string
	blank       string // blank-node label assigned at first mutation build
	props       map[string]any
	collections map[string]*Collection
	raw         Record
	tracker     *Tracker
}

// Type returns the instance's type descriptor.
func (i *Instance) Type() *schema.Type {
	return i.typ
}

// UID returns the instance's uid, empty for unsaved instances.
func (i *Instance) UID() string {
	return i.uid
}

// SetUID records the uid assigned to the instance by the database.
func (i *Instance) SetUID(uid string) {
	i.uid = uid
	if i.typ.UIDField != "" {
		i.props[i.typ.UIDField] = uid
	}
}

// Get returns the value of the named scalar property.
func (i *Instance) Get(name string) any {
	return i.props[name]
}

// Set assigns the named scalar property. If the property is tracked,
// the write marks it dirty relative to the tracked baseline.
func (i *Instance) Set(name string, value any) {
	i.props[name] = value
	if i.tracker != nil {
		i.tracker.observe(i, name)
	}
}

// Raw returns the instance's retained raw record. Facet extraction has
// already removed namespaced facet fields from it.
func (i *Instance) Raw() Record {
	return i.raw
}

// Predicate returns the collection bound to the named predicate,
// creating an empty one on first read. The name must be declared on the
// instance's type.
func (i *Instance) Predicate(name string) (*Collection, error) {
	p := i.predicateOf(name)
	if p == nil {
		return nil, schema.NewConfigurationError(i.typ.Name, name, "unknown predicate")
	}
	c, ok := i.collections[name]
	if !ok {
		c = NewCollection(i.mapper.facets, name, i)
		i.collections[name] = c
	}
	return c, nil
}

// SetPredicate installs a fresh collection for the named predicate.
// value is an existing *Collection, a []*Instance, or a raw []any
// element array; either way every instance element goes through facet
// extraction: each declared facet field is read off the element's raw
// record under "<predicate>|<field>", collected into a facet instance
// bound via the facet store, and removed from the element's own data.
//
// The installed collection starts with an empty added-set.
func (i *Instance) SetPredicate(name string, value any) error {
	p := i.predicateOf(name)
	if p == nil {
		return schema.NewConfigurationError(i.typ.Name, name, "unknown predicate")
	}
	var elems []any
	switch v := value.(type) {
	case nil:
	case *Collection:
		elems = v.Get()
	case []*Instance:
		elems = make([]any, len(v))
		for n, inst := range v {
			elems[n] = inst
		}
	case []any:
		elems = v
	default:
		return schema.NewConfigurationError(i.typ.Name, name, "predicate value must be a collection or element array")
	}
	i.extractFacets(p, elems)
	i.collections[name] = newCollection(i.mapper.facets, name, i, elems)
	return nil
}

// extractFacets pulls the inline facet fields of every instance element
// out of its raw record and into a facet instance bound to the
// (predicate, owner, element) triple.
func (i *Instance) extractFacets(p *schema.Predicate, elems []any) {
	if p.Facet == "" {
		return
	}
	descriptors := i.mapper.registry.FacetsOf(p.Facet)
	if len(descriptors) == 0 {
		return
	}
	serialized := serializedName(i.typ.Name, p.Name, p.External)
	for _, el := range elems {
		child, ok := el.(*Instance)
		if !ok || child.raw == nil {
			continue
		}
		fields := make(map[string]any)
		for _, fd := range descriptors {
			key := serialized + "|" + fd.Name
			if fv, ok := child.raw[key]; ok {
				fields[fd.Name] = fv
				delete(child.raw, key)
			}
		}
		if len(fields) == 0 {
			continue
		}
		facet := i.mapper.newFacetInstance(p.Facet, fields)
		i.mapper.facets.Attach(p.Name, i, el, facet)
	}
}

// predicateOf returns the declared predicate descriptor for name.
func (i *Instance) predicateOf(name string) *schema.Predicate {
	for _, p := range i.typ.Predicates {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// serializedName returns the wire name of a member: its declared
// external name, or the generated "<TypeName>.<name>" global name.
func serializedName(typeName, name, external string) string {
	if external != "" {
		return external
	}
	return typeName + "." + name
}

// coerce converts a decoded JSON value to the declared kind. Values
// that do not fit are returned unchanged; the mapper never fails on
// data.
func coerce(k schema.Kind, list bool, v any) any {
	if list {
		arr, ok := v.([]any)
		if !ok {
			return v
		}
		out := make([]any, len(arr))
		for n, el := range arr {
			out[n] = coerce(k, false, el)
		}
		return out
	}
	switch k {
	case schema.KindInt:
		switch n := v.(type) {
		case float64:
			return int64(n)
		case int:
			return int64(n)
		}
	case schema.KindFloat:
		if n, ok := v.(int); ok {
			return float64(n)
		}
	case schema.KindDateTime:
		if s, ok := v.(string); ok {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				return ts
			}
		}
	}
	return v
}
