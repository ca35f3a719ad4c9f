package graph

import (
	"fmt"
	"reflect"

	"github.com/andrejpavlovic/dgraph-orm/schema"
)

// Mapper converts expanded raw graphs into typed instance graphs. It
// owns the facet store and the diff tracker its instances report to.
// All operations are synchronous and single-threaded by contract.
type Mapper struct {
	registry *schema.Registry
	facets   *FacetStore
	tracker  *Tracker
	log      func(...any)
}

// NewMapper returns a mapper over the given registry.
func NewMapper(r *schema.Registry) *Mapper {
	return &Mapper{
		registry: r,
		facets:   NewFacetStore(),
		tracker:  NewTracker(),
	}
}

// SetLog installs a debug log callback receiving pre-formatted
// diagnostic strings. Nil disables logging.
func (m *Mapper) SetLog(log func(...any)) {
	m.log = log
}

func (m *Mapper) logf(format string, args ...any) {
	if m.log != nil {
		m.log(fmt.Sprintf(format, args...))
	}
}

// Facets returns the mapper's facet store.
func (m *Mapper) Facets() *FacetStore {
	return m.facets
}

// Tracker returns the mapper's diff tracker.
func (m *Mapper) Tracker() *Tracker {
	return m.tracker
}

// Registry returns the mapper's schema registry.
func (m *Mapper) Registry() *schema.Registry {
	return m.registry
}

// NewInstance returns a fresh, empty instance of the named type, for
// building new nodes in application code. The type must be registered.
func (m *Mapper) NewInstance(typeName string) (*Instance, error) {
	t := m.registry.Type(typeName)
	if t == nil {
		return nil, schema.NewConfigurationError(typeName, "", "unknown type")
	}
	return m.newInstance(t, make(Record)), nil
}

func (m *Mapper) newInstance(t *schema.Type, raw Record) *Instance {
	inst := &Instance{
		mapper:      m,
		typ:         t,
		props:       make(map[string]any),
		collections: make(map[string]*Collection),
		raw:         raw,
	}
	if uid, ok := raw[UIDField].(string); ok {
		inst.uid = uid
		if t.UIDField != "" {
			inst.props[t.UIDField] = uid
		}
	}
	for _, p := range t.Properties {
		if v, ok := raw[serializedName(t.Name, p.Name, p.External)]; ok {
			inst.props[p.Name] = coerce(p.Kind, p.List, v)
		}
	}
	return inst
}

// newFacetInstance builds a facet instance from extracted fields and
// purges its diff state so it reports clean immediately.
func (m *Mapper) newFacetInstance(facetType string, fields map[string]any) *Instance {
	t := m.registry.Type(facetType)
	if t == nil {
		// Facet types come into existence through AddFacet; an absent
		// descriptor still yields a usable untyped holder.
		t = &schema.Type{Name: facetType}
	}
	inst := &Instance{
		mapper:      m,
		typ:         t,
		props:       fields,
		collections: make(map[string]*Collection),
	}
	for _, fd := range m.registry.FacetsOf(facetType) {
		m.tracker.TrackProperty(inst, fd.Name, fd.Name)
	}
	m.tracker.Purge(inst)
	return inst
}

// arrayKey is the memoization key of one raw element array: the slice's
// backing-array pointer and length. Two fields holding the identical
// raw array after the expand pass share a key and therefore share the
// produced instance array.
type arrayKey struct {
	ptr uintptr
	len int
}

// Transform converts the given root element array into typed instances
// of the named type.
//
// Conversion is memoized on raw-array identity: a raw array reached a
// second time through a different path returns the already-produced
// instance array instead of re-descending, which terminates recursion
// on cycles and guarantees instance sharing on diamonds. Every produced
// instance leaves with populated scalar properties, tracking installed,
// predicate collections wired, and a purged diff.
//
// An unresolvable predicate target type is a configuration fault,
// returned synchronously.
func (m *Mapper) Transform(typeName string, roots []any) ([]*Instance, error) {
	t := m.registry.Type(typeName)
	if t == nil {
		return nil, schema.NewConfigurationError(typeName, "", "unknown type")
	}
	return m.transform(t, roots, make(map[arrayKey][]*Instance))
}

func (m *Mapper) transform(t *schema.Type, raws []any, memo map[arrayKey][]*Instance) ([]*Instance, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	key := arrayKey{ptr: reflect.ValueOf(raws).Pointer(), len: len(raws)}
	if out, ok := memo[key]; ok {
		return out, nil
	}
	out := make([]*Instance, len(raws))
	memo[key] = out
	// Instantiate every element before descending into predicates so a
	// cycle re-entering this array observes complete instances.
	for n, el := range raws {
		rec, ok := el.(Record)
		if !ok {
			m.logf("%v", &DataError{Message: "element is not a record, skipped"})
			continue
		}
		out[n] = m.newInstance(t, rec)
	}
	for _, inst := range out {
		if inst == nil {
			continue
		}
		for _, p := range t.Properties {
			m.tracker.TrackProperty(inst, p.Name, serializedName(t.Name, p.Name, p.External))
		}
		for _, p := range t.Predicates {
			raw, ok := inst.raw[serializedName(t.Name, p.Name, p.External)]
			if !ok {
				continue
			}
			arr, ok := raw.([]any)
			if !ok {
				m.logf("%v", &DataError{UID: inst.uid, Field: p.Name, Message: "predicate field is not an array, skipped"})
				continue
			}
			var value any
			if p.Target != "" {
				target := m.registry.Type(p.Target)
				if target == nil {
					return nil, schema.NewConfigurationError(t.Name, p.Name, "unresolvable predicate target type "+p.Target)
				}
				elems, err := m.transform(target, arr, memo)
				if err != nil {
					return nil, err
				}
				value = elems
			} else {
				value = arr
			}
			if err := inst.SetPredicate(p.Name, value); err != nil {
				return nil, err
			}
		}
		m.tracker.Purge(inst)
	}
	return out, nil
}

// Purge resets all diff state of inst: tracked scalar properties and
// every predicate collection's added-set.
func (m *Mapper) Purge(inst *Instance) {
	m.tracker.Purge(inst)
	for _, c := range inst.collections {
		c.purge()
	}
}

// Dispose releases all side-table state held for inst: tracking state
// and every facet binding it participates in.
func (m *Mapper) Dispose(inst *Instance) {
	m.tracker.Dispose(inst)
	m.facets.Dispose(inst)
}
