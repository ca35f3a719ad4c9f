// Package predicate provides fluent builders for declaring the
// edge-valued and scalar-valued predicates of a node type.
//
// A node-valued predicate names its target type; cardinality defaults to
// array and is narrowed with Unique:
//
//	schema.AddPredicate("Person", predicate.To("works", "Work").Descriptor())
//	schema.AddPredicate("Person", predicate.To("spouse", "Person").Unique().Descriptor())
//
// Facet data riding on the predicate's edges is declared by naming the
// facet type:
//
//	predicate.To("works", "Work").Facet("WorkFacet")
package predicate

import "github.com/andrejpavlovic/dgraph-orm/schema"

// Builder accumulates one predicate declaration.
type Builder struct {
	desc *schema.Predicate
}

// To returns a builder for a predicate pointing at the named node type.
func To(name, target string) *Builder {
	return &Builder{desc: &schema.Predicate{Name: name, Target: target, List: true}}
}

// String returns a builder for a string-valued predicate.
func String(name string) *Builder {
	return scalar(name, schema.KindString)
}

// Int returns a builder for an int-valued predicate.
func Int(name string) *Builder {
	return scalar(name, schema.KindInt)
}

// Float returns a builder for a float-valued predicate.
func Float(name string) *Builder {
	return scalar(name, schema.KindFloat)
}

// Bool returns a builder for a bool-valued predicate.
func Bool(name string) *Builder {
	return scalar(name, schema.KindBool)
}

// DateTime returns a builder for a datetime-valued predicate.
func DateTime(name string) *Builder {
	return scalar(name, schema.KindDateTime)
}

func scalar(name string, k schema.Kind) *Builder {
	return &Builder{desc: &schema.Predicate{Name: name, Kind: k, List: true}}
}

// Predicate sets the serialized predicate name, overriding the generated
// "<TypeName>.<name>" global name.
func (b *Builder) Predicate(name string) *Builder {
	b.desc.External = name
	return b
}

// Unique narrows the cardinality from array to a single value.
func (b *Builder) Unique() *Builder {
	b.desc.List = false
	return b
}

// Facet associates the named facet type with the predicate's edges.
func (b *Builder) Facet(facetType string) *Builder {
	b.desc.Facet = facetType
	return b
}

// Descriptor returns the accumulated predicate descriptor.
func (b *Builder) Descriptor() *schema.Predicate {
	return b.desc
}
