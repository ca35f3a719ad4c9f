package schema

import "strings"

// Build renders the registry as Dgraph schema text: one "type" block per
// registered node type in first-registration order, followed by one flat
// predicate-type line per distinct predicate name.
//
// Rendering rules:
//   - A member's rendered name is its external name when declared,
//     otherwise the generated "<TypeName>.<name>" global name.
//   - Scalar properties and scalar-valued predicates render inside the
//     type block as "name: type", with the type bracketed for array
//     cardinality, and contribute one flat "name:type" line (prefixed
//     with "@index(kind) " when an index was declared).
//   - Node-valued predicates render nothing in either section.
//   - The uid field renders nothing.
//   - Flat lines are deduplicated by rendered name; the first
//     declaration wins. Types that declare neither properties nor
//     predicates (facet types) render no block.
//
// The output is deterministic for a given declaration order and ends
// with a trailing newline.
func Build(r *Registry) string {
	var b strings.Builder
	for _, t := range r.Types() {
		if len(t.Properties) == 0 && len(t.Predicates) == 0 {
			continue
		}
		b.WriteString("type ")
		b.WriteString(t.Name)
		b.WriteString(" {\n")
		for _, p := range t.Properties {
			b.WriteString("  ")
			b.WriteString(renderedName(t.Name, p.Name, p.External))
			b.WriteString(": ")
			b.WriteString(renderedType(p.Kind, p.List))
			b.WriteString("\n")
		}
		for _, p := range t.Predicates {
			if p.Target != "" {
				continue
			}
			b.WriteString("  ")
			b.WriteString(renderedName(t.Name, p.Name, p.External))
			b.WriteString(": ")
			b.WriteString(renderedType(p.Kind, p.List))
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}
	seen := make(map[string]struct{})
	for _, t := range r.Types() {
		for _, p := range t.Properties {
			writeFlat(&b, seen, renderedName(t.Name, p.Name, p.External), p.Kind, p.List, p.Index)
		}
		for _, p := range t.Predicates {
			if p.Target != "" {
				continue
			}
			writeFlat(&b, seen, renderedName(t.Name, p.Name, p.External), p.Kind, p.List, "")
		}
	}
	return b.String()
}

// writeFlat emits one flat predicate-type line unless the rendered name
// was already emitted.
func writeFlat(b *strings.Builder, seen map[string]struct{}, name string, k Kind, list bool, index string) {
	if _, ok := seen[name]; ok {
		return
	}
	seen[name] = struct{}{}
	if index != "" {
		b.WriteString("@index(")
		b.WriteString(index)
		b.WriteString(") ")
	}
	b.WriteString(name)
	b.WriteString(":")
	b.WriteString(renderedType(k, list))
	b.WriteString("\n")
}

func renderedName(typeName, name, external string) string {
	if external != "" {
		return external
	}
	return typeName + "." + name
}

func renderedType(k Kind, list bool) string {
	if list {
		return "[" + k.String() + "]"
	}
	return k.String()
}
