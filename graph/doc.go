// Package graph implements the object-graph mapper: the cycle-safe,
// identity-sharing transform from the flat, uid-keyed node records a
// graph database returns into typed in-memory instances.
//
// # Mapping
//
// Mapping is a two-phase process driven by the schema registry. The
// expand phase merges the uid index into every partial reference found
// in the result tree, in place:
//
//	index := graph.BuildIndex(roots)
//	mapper := graph.NewMapper(registry)
//	mapper.Expand(index, roots)
//
// The transform phase then converts raw record arrays into instance
// arrays, memoized on raw-array identity so that cycles terminate and
// diamonds resolve to shared instances:
//
//	people, err := mapper.Transform("Person", roots)
//
// # Instances
//
// A mapped Instance exposes scalar properties through Get/Set and
// edge-valued predicates through an explicit accessor pair:
//
//	works, _ := person.Predicate("works")
//	for _, w := range works.Get() { ... }
//
// Writes made after mapping are recorded by the instance's diff
// tracker and by each collection's added-set; every instance leaves the
// mapper with a clean baseline, so only post-load mutations are ever
// reported.
//
// # Facets
//
// Facet fields arrive inline on child records as "<predicate>|<field>".
// The mapper extracts them into separate facet instances, bound to the
// (predicate, owner, element) triple in the facet store, and removes
// the namespaced fields from the child's own data:
//
//	f, ok := works.Facet(firstWork)
//
// # Mutations
//
// BuildMutation serializes the accumulated diffs back into a Dgraph
// set-JSON payload, naming unsaved instances with blank-node uids.
package graph
