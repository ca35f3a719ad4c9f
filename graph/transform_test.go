package graph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrejpavlovic/dgraph-orm/graph"
	"github.com/andrejpavlovic/dgraph-orm/schema"
)

func TestTransformScalars(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	raws := []any{graph.Record{
		"uid":         "0x1",
		"dgraph.type": []any{"Person"},
		"name":        "Ann",
		"Person.age":  float64(41),
	}}

	insts, err := m.Transform("Person", raws)
	require.NoError(t, err)
	require.Len(t, insts, 1)

	ann := insts[0]
	assert.Equal(t, "0x1", ann.UID())
	assert.Equal(t, "0x1", ann.Get("id"), "uid mirrors into the declared uid property")
	assert.Equal(t, "Ann", ann.Get("name"))
	assert.Equal(t, int64(41), ann.Get("age"), "json numbers coerce to the declared kind")
	assert.Empty(t, m.Tracker().Diff(ann), "loaded instances start clean")
}

func TestTransformDirtyAfterLoad(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	insts, err := m.Transform("Person", []any{graph.Record{"uid": "0x1", "name": "Ann"}})
	require.NoError(t, err)

	insts[0].Set("name", "Anna")
	assert.Equal(t, []string{"name"}, m.Tracker().Diff(insts[0]))
}

func TestTransformPredicates(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	raws := []any{graph.Record{
		"uid":          "0x1",
		"name":         "Ann",
		"Person.works": []any{graph.Record{
			"uid":       "0x2",
			"Work.name": "Shop",
		}},
	}}

	insts, err := m.Transform("Person", raws)
	require.NoError(t, err)

	c, err := insts[0].Predicate("works")
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	work, ok := c.Get()[0].(*graph.Instance)
	require.True(t, ok)
	assert.Equal(t, "Work", work.Type().Name)
	assert.Equal(t, "Shop", work.Get("name"))
	assert.Empty(t, c.Diff(), "loaded collections start clean")
}

func TestTransformFacetExtraction(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	raws := []any{graph.Record{
		"uid":          "0x1",
		"name":         "Ann",
		"Person.works": []any{graph.Record{
			"uid":                "0x2",
			"Work.name":          "Shop",
			"Person.works|since": float64(2020),
			"Person.works|role":  "clerk",
		}},
	}}

	insts, err := m.Transform("Person", raws)
	require.NoError(t, err)

	c, err := insts[0].Predicate("works")
	require.NoError(t, err)
	work := c.Get()[0].(*graph.Instance)

	f, ok := c.Facet(work)
	require.True(t, ok, "namespaced fields materialize as a facet instance")
	assert.Equal(t, float64(2020), f.Get("since"))
	assert.Equal(t, "clerk", f.Get("role"))
	assert.Empty(t, m.Tracker().Diff(f), "extracted facets start clean")

	// Extraction strips the namespaced fields off the child's raw record.
	assert.NotContains(t, work.Raw(), "Person.works|since")
	assert.NotContains(t, work.Raw(), "Person.works|role")
	assert.Contains(t, work.Raw(), "Work.name")
}

func TestTransformCycle(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	recA := graph.Record{"uid": "0xa", "name": "A"}
	recB := graph.Record{"uid": "0xb", "name": "B"}
	arrA := []any{recA}
	recA["Person.friends"] = []any{recB}
	recB["Person.friends"] = arrA

	insts, err := m.Transform("Person", arrA)
	require.NoError(t, err)
	require.Len(t, insts, 1)

	a := insts[0]
	friendsOfA, err := a.Predicate("friends")
	require.NoError(t, err)
	require.Equal(t, 1, friendsOfA.Len())
	b := friendsOfA.Get()[0].(*graph.Instance)
	assert.Equal(t, "B", b.Get("name"))

	friendsOfB, err := b.Predicate("friends")
	require.NoError(t, err)
	require.Equal(t, 1, friendsOfB.Len())
	assert.Same(t, a, friendsOfB.Get()[0], "the cycle closes on the same instance")
}

func TestTransformDiamondSharing(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	shared := []any{graph.Record{"uid": "0xc", "name": "C"}}
	raws := []any{
		graph.Record{"uid": "0x1", "name": "Ann", "Person.friends": shared},
		graph.Record{"uid": "0x2", "name": "Bob", "Person.friends": shared},
	}

	insts, err := m.Transform("Person", raws)
	require.NoError(t, err)
	require.Len(t, insts, 2)

	c1, err := insts[0].Predicate("friends")
	require.NoError(t, err)
	c2, err := insts[1].Predicate("friends")
	require.NoError(t, err)
	assert.Same(t, c1.Get()[0], c2.Get()[0], "a shared raw array yields shared instances")
}

func TestTransformDataFaults(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	var logged []any
	m.SetLog(func(args ...any) { logged = append(logged, args...) })

	insts, err := m.Transform("Person", []any{
		"junk",
		graph.Record{"uid": "0x1", "name": "Ann", "Person.friends": "oops"},
	})
	require.NoError(t, err, "data faults never fail the transform")
	require.Len(t, insts, 2)
	assert.Nil(t, insts[0])
	require.NotNil(t, insts[1])

	c, err := insts[1].Predicate("friends")
	require.NoError(t, err)
	assert.Zero(t, c.Len(), "a malformed predicate field is skipped")
	assert.NotEmpty(t, logged)
}

func TestTransformConfigurationFaults(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	_, err := m.Transform("Nope", []any{})
	require.Error(t, err)
	assert.True(t, schema.IsConfiguration(err))

	r := schema.NewRegistry()
	r.AddPredicate("Person", &schema.Predicate{Name: "pets", Target: "Ghost", List: true})
	m = graph.NewMapper(r)
	_, err = m.Transform("Person", []any{graph.Record{
		"uid":         "0x1",
		"Person.pets": []any{graph.Record{"uid": "0x2"}},
	}})
	require.Error(t, err)
	assert.True(t, schema.IsConfiguration(err))
}

func TestTransformEmpty(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	insts, err := m.Transform("Person", nil)
	require.NoError(t, err)
	assert.Nil(t, insts)
}

func TestTransformDateTimeCoercion(t *testing.T) {
	t.Parallel()

	r := schema.NewRegistry()
	r.AddProperty("Event", &schema.Property{Name: "at", Kind: schema.KindDateTime})
	m := graph.NewMapper(r)

	insts, err := m.Transform("Event", []any{graph.Record{
		"uid":      "0x1",
		"Event.at": "2021-03-01T10:00:00Z",
	}})
	require.NoError(t, err)

	at, ok := insts[0].Get("at").(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2021, at.Year())
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	full := graph.Record{"uid": "0x2", "name": "Bob", "Person.age": float64(30)}
	root := graph.Record{
		"uid":            "0x1",
		"name":           "Ann",
		"Person.friends": []any{full, graph.Record{"uid": "0x1"}},
	}

	index := graph.BuildIndex([]any{root})
	require.Len(t, index, 2)
	assert.Equal(t, "Ann", index["0x1"]["name"], "the first occurrence is canonical")
	assert.Equal(t, "Bob", index["0x2"]["name"])
}

func TestBuildIndexFillsMissingFields(t *testing.T) {
	t.Parallel()

	first := graph.Record{"uid": "0x3", "name": "C"}
	second := graph.Record{"uid": "0x3", "name": "X", "Person.age": float64(9)}

	index := graph.BuildIndex([]any{first, second})
	require.Len(t, index, 1)
	assert.Equal(t, "C", index["0x3"]["name"], "existing fields are not overwritten")
	assert.Equal(t, float64(9), index["0x3"]["Person.age"], "absent fields are filled in")
}

func TestExpandMergesReferences(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	index := map[string]graph.Record{
		"0x2": {"uid": "0x2", "name": "Bob", "Person.age": float64(30)},
	}
	root := graph.Record{
		"uid":            "0x1",
		"Person.friends": []any{graph.Record{"uid": "0x2"}},
	}

	m.Expand(index, []any{root})

	child := root["Person.friends"].([]any)[0].(graph.Record)
	assert.Equal(t, "Bob", child["name"])
	assert.Equal(t, float64(30), child["Person.age"])
}

func TestExpandTerminatesOnCycles(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	recA := graph.Record{"uid": "0xa", "name": "A"}
	recB := graph.Record{"uid": "0xb", "name": "B"}
	recA["Person.friends"] = []any{recB}
	recB["Person.friends"] = []any{recA}
	index := map[string]graph.Record{"0xa": recA, "0xb": recB}

	m.Expand(index, []any{recA})

	back := recB["Person.friends"].([]any)[0].(graph.Record)
	assert.Equal(t, "A", back["name"])
}

func TestExpandToleratesMissingUID(t *testing.T) {
	t.Parallel()

	m := newTestMapper(t)
	var logged []any
	m.SetLog(func(args ...any) { logged = append(logged, args...) })

	index := map[string]graph.Record{
		"0x2": {"uid": "0x2", "name": "Bob"},
	}
	anon := graph.Record{"name": "ghost", "Person.friends": []any{graph.Record{"uid": "0x2"}}}
	root := graph.Record{"uid": "0x1", "Person.friends": []any{anon}}

	m.Expand(index, []any{root})

	assert.NotEmpty(t, logged, "the skipped merge is reported")
	// The branch below the uid-less record is still expanded.
	grand := anon["Person.friends"].([]any)[0].(graph.Record)
	assert.Equal(t, "Bob", grand["name"])
}
