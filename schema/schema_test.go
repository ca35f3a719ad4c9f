package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrejpavlovic/dgraph-orm/schema"
)

func TestRegistryOrdering(t *testing.T) {
	t.Parallel()

	r := schema.NewRegistry()
	r.AddProperty("Work", &schema.Property{Name: "name", Kind: schema.KindString})
	r.AddProperty("Person", &schema.Property{Name: "name", Kind: schema.KindString})
	r.AddProperty("Person", &schema.Property{Name: "age", Kind: schema.KindInt})
	r.AddProperty("Work", &schema.Property{Name: "title", Kind: schema.KindString})

	types := r.Types()
	require.Len(t, types, 2)
	assert.Equal(t, "Work", types[0].Name)
	assert.Equal(t, "Person", types[1].Name)

	props := r.PropertiesOf("Person")
	require.Len(t, props, 2)
	assert.Equal(t, "name", props[0].Name)
	assert.Equal(t, "age", props[1].Name)

	props = r.PropertiesOf("Work")
	require.Len(t, props, 2)
	assert.Equal(t, "name", props[0].Name)
	assert.Equal(t, "title", props[1].Name)
}

func TestRegistryUIDRouting(t *testing.T) {
	t.Parallel()

	r := schema.NewRegistry()
	r.AddProperty("Person", &schema.Property{Name: "id", Kind: schema.KindUID})
	r.AddProperty("Person", &schema.Property{Name: "name", Kind: schema.KindString})

	typ := r.Type("Person")
	require.NotNil(t, typ)
	assert.Equal(t, "id", typ.UIDField)

	// The uid field is not a schema property.
	props := r.PropertiesOf("Person")
	require.Len(t, props, 1)
	assert.Equal(t, "name", props[0].Name)
}

func TestRegistryPredicatesAndFacets(t *testing.T) {
	t.Parallel()

	r := schema.NewRegistry()
	r.AddPredicate("Person", &schema.Predicate{Name: "works", Target: "Work", List: true, Facet: "WorkFacet"})
	r.AddPredicate("Person", &schema.Predicate{Name: "hobbies", Kind: schema.KindString, List: true})
	r.AddFacet("WorkFacet", &schema.Facet{Name: "since", Predicate: "works"})
	r.AddFacet("WorkFacet", &schema.Facet{Name: "role", Predicate: "works"})

	preds := r.PredicatesOf("Person")
	require.Len(t, preds, 2)
	assert.Equal(t, "works", preds[0].Name)
	assert.Equal(t, "hobbies", preds[1].Name)

	facets := r.FacetsOf("WorkFacet")
	require.Len(t, facets, 2)
	assert.Equal(t, "since", facets[0].Name)
	assert.Equal(t, "role", facets[1].Name)

	assert.Nil(t, r.PredicatesOf("Unknown"))
	assert.Nil(t, r.FacetsOf("Unknown"))
}

func TestRegistryReset(t *testing.T) {
	t.Parallel()

	r := schema.NewRegistry()
	r.AddProperty("Person", &schema.Property{Name: "name", Kind: schema.KindString})
	require.Len(t, r.Types(), 1)

	r.Reset()
	assert.Empty(t, r.Types())
	assert.Nil(t, r.Type("Person"))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     schema.Kind
		expected string
	}{
		{schema.KindString, "string"},
		{schema.KindInt, "int"},
		{schema.KindFloat, "float"},
		{schema.KindBool, "bool"},
		{schema.KindDateTime, "datetime"},
		{schema.KindGeo, "geo"},
		{schema.KindPassword, "password"},
		{schema.KindUID, "uid"},
		{schema.KindInvalid, "invalid"},
		{schema.Kind(99), "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, ok := schema.ParseKind("string")
	assert.True(t, ok)
	assert.Equal(t, schema.KindString, k)

	k, ok = schema.ParseKind("datetime")
	assert.True(t, ok)
	assert.Equal(t, schema.KindDateTime, k)

	_, ok = schema.ParseKind("Work")
	assert.False(t, ok)

	_, ok = schema.ParseKind("invalid")
	assert.False(t, ok)
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	err := schema.NewConfigurationError("Person", "works", "unresolvable predicate target type Work")
	assert.ErrorIs(t, err, schema.ErrConfiguration)
	assert.True(t, schema.IsConfiguration(err))
	assert.Contains(t, err.Error(), "Person")
	assert.Contains(t, err.Error(), "works")

	assert.False(t, schema.IsConfiguration(nil))
	assert.False(t, schema.IsConfiguration(assert.AnError))
}
