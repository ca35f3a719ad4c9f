// Package load registers type declarations from a YAML document into a
// schema registry, as an alternative to declaring types in Go with the
// field and predicate builders.
//
// Document shape:
//
//	types:
//	  - name: Person
//	    uid: id
//	    properties:
//	      - name: name
//	        predicate: name
//	        type: string
//	        index: hash
//	      - name: hobbies
//	        type: [string]
//	    predicates:
//	      - name: works
//	        type: [Work]
//	        facet: WorkFacet
//	facets:
//	  - type: WorkFacet
//	    fields:
//	      - name: years
//	        predicate: works
//
// A member's type marker is either a bare name (single value) or a
// one-element sequence (array cardinality). A sequence with any other
// length is a configuration error.
package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrejpavlovic/dgraph-orm/schema"
)

// Document is the root of a schema declaration file.
type Document struct {
	Types  []TypeDecl  `yaml:"types"`
	Facets []FacetDecl `yaml:"facets,omitempty"`
}

// TypeDecl declares one node type.
type TypeDecl struct {
	Name       string          `yaml:"name"`
	UID        string          `yaml:"uid,omitempty"`
	Properties []PropertyDecl  `yaml:"properties,omitempty"`
	Predicates []PredicateDecl `yaml:"predicates,omitempty"`
}

// PropertyDecl declares one scalar property.
type PropertyDecl struct {
	Name      string     `yaml:"name"`
	Predicate string     `yaml:"predicate,omitempty"`
	Type      TypeMarker `yaml:"type"`
	Index     string     `yaml:"index,omitempty"`
}

// PredicateDecl declares one predicate. Type names either a scalar kind
// or a registered node type.
type PredicateDecl struct {
	Name      string     `yaml:"name"`
	Predicate string     `yaml:"predicate,omitempty"`
	Type      TypeMarker `yaml:"type"`
	Facet     string     `yaml:"facet,omitempty"`
}

// FacetDecl declares the fields of one facet type.
type FacetDecl struct {
	Type   string `yaml:"type"`
	Fields []struct {
		Name      string `yaml:"name"`
		Predicate string `yaml:"predicate"`
	} `yaml:"fields"`
}

// TypeMarker is a YAML type declaration that is either a bare type name
// or a one-element sequence marking array cardinality.
type TypeMarker struct {
	Name string
	List bool
}

// UnmarshalYAML implements yaml.Unmarshaler for TypeMarker.
func (m *TypeMarker) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		m.Name = node.Value
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		if len(list) != 1 {
			return &schema.ConfigurationError{
				Message: fmt.Sprintf("cardinality marker must hold exactly one element, got %d", len(list)),
			}
		}
		m.Name = list[0]
		m.List = true
		return nil
	default:
		return fmt.Errorf("expected type name or one-element list, got yaml kind %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for TypeMarker.
func (m TypeMarker) MarshalYAML() (any, error) {
	if m.List {
		return []string{m.Name}, nil
	}
	return m.Name, nil
}

// File reads the YAML document at path and registers it into r.
func File(r *schema.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}
	return Bytes(r, data)
}

// Bytes parses a YAML document and registers every declaration into r.
func Bytes(r *schema.Registry, data []byte) error {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse schema document: %w", err)
	}
	return Register(r, &doc)
}

// Register walks an already-parsed document and registers every
// declaration into r in document order.
func Register(r *schema.Registry, doc *Document) error {
	for _, t := range doc.Types {
		if t.Name == "" {
			return schema.NewConfigurationError("", "", "type declaration missing name")
		}
		if t.UID != "" {
			r.AddProperty(t.Name, &schema.Property{Name: t.UID, Kind: schema.KindUID})
		}
		for _, p := range t.Properties {
			kind, ok := schema.ParseKind(p.Type.Name)
			if !ok {
				return schema.NewConfigurationError(t.Name, p.Name,
					fmt.Sprintf("unknown scalar kind %q", p.Type.Name))
			}
			r.AddProperty(t.Name, &schema.Property{
				Name:     p.Name,
				External: p.Predicate,
				Kind:     kind,
				List:     p.Type.List,
				Index:    p.Index,
			})
		}
		for _, p := range t.Predicates {
			d := &schema.Predicate{
				Name:     p.Name,
				External: p.Predicate,
				List:     p.Type.List,
				Facet:    p.Facet,
			}
			if kind, ok := schema.ParseKind(p.Type.Name); ok {
				d.Kind = kind
			} else {
				d.Target = p.Type.Name
			}
			r.AddPredicate(t.Name, d)
		}
	}
	for _, f := range doc.Facets {
		if f.Type == "" {
			return schema.NewConfigurationError("", "", "facet declaration missing type")
		}
		for _, fd := range f.Fields {
			r.AddFacet(f.Type, &schema.Facet{Name: fd.Name, Predicate: fd.Predicate})
		}
	}
	return nil
}
