// Package field provides fluent builders for declaring scalar properties
// of a node type.
//
// A builder is created per property and handed to the registry at
// startup:
//
//	schema.AddProperty("Person", field.String("name").Index("hash").Descriptor())
//	schema.AddProperty("Person", field.String("hobbies").List().Descriptor())
//	schema.AddProperty("Person", field.UID("id").Descriptor())
//
// The serialized predicate name defaults to "<TypeName>.<name>"; declare
// an explicit one with Predicate:
//
//	field.String("name").Predicate("name")
package field

import "github.com/andrejpavlovic/dgraph-orm/schema"

// Index kinds accepted by Index. The set mirrors the Dgraph string and
// scalar tokenizers.
const (
	IndexHash     = "hash"
	IndexExact    = "exact"
	IndexTerm     = "term"
	IndexFulltext = "fulltext"
	IndexTrigram  = "trigram"
	IndexInt      = "int"
	IndexFloat    = "float"
	IndexBool     = "bool"
	IndexDay      = "day"
	IndexGeo      = "geo"
)

// Builder accumulates one property declaration.
type Builder struct {
	desc *schema.Property
}

// String returns a string property builder.
func String(name string) *Builder {
	return newBuilder(name, schema.KindString)
}

// Int returns an int property builder.
func Int(name string) *Builder {
	return newBuilder(name, schema.KindInt)
}

// Float returns a float property builder.
func Float(name string) *Builder {
	return newBuilder(name, schema.KindFloat)
}

// Bool returns a bool property builder.
func Bool(name string) *Builder {
	return newBuilder(name, schema.KindBool)
}

// DateTime returns a datetime property builder.
func DateTime(name string) *Builder {
	return newBuilder(name, schema.KindDateTime)
}

// Geo returns a geo property builder.
func Geo(name string) *Builder {
	return newBuilder(name, schema.KindGeo)
}

// Password returns a password property builder.
func Password(name string) *Builder {
	return newBuilder(name, schema.KindPassword)
}

// UID returns a uid property builder. The registry records it as the
// type's uid field rather than a schema property.
func UID(name string) *Builder {
	return newBuilder(name, schema.KindUID)
}

func newBuilder(name string, k schema.Kind) *Builder {
	return &Builder{desc: &schema.Property{Name: name, Kind: k}}
}

// Predicate sets the serialized predicate name, overriding the generated
// "<TypeName>.<name>" global name.
func (b *Builder) Predicate(name string) *Builder {
	b.desc.External = name
	return b
}

// List marks the property as array-valued.
func (b *Builder) List() *Builder {
	b.desc.List = true
	return b
}

// Index declares an index of the given kind on the property.
func (b *Builder) Index(kind string) *Builder {
	b.desc.Index = kind
	return b
}

// Descriptor returns the accumulated property descriptor.
func (b *Builder) Descriptor() *schema.Property {
	return b.desc
}
