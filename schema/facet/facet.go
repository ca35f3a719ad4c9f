// Package facet provides the builder for declaring facet fields on a
// facet type. A facet field rides on the edges of one predicate and is
// serialized inline as "<predicate>|<field>".
//
//	schema.AddFacet("WorkFacet", facet.Field("years", "works").Descriptor())
package facet

import "github.com/andrejpavlovic/dgraph-orm/schema"

// Builder accumulates one facet field declaration.
type Builder struct {
	desc *schema.Facet
}

// Field returns a builder for a facet field riding on the named
// predicate.
func Field(name, predicate string) *Builder {
	return &Builder{desc: &schema.Facet{Name: name, Predicate: predicate}}
}

// Descriptor returns the accumulated facet descriptor.
func (b *Builder) Descriptor() *schema.Facet {
	return b.desc
}
