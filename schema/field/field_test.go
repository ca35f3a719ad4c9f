package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrejpavlovic/dgraph-orm/schema"
	"github.com/andrejpavlovic/dgraph-orm/schema/field"
)

func TestString(t *testing.T) {
	t.Parallel()

	fd := field.String("name").Descriptor()
	assert.Equal(t, "name", fd.Name)
	assert.Equal(t, schema.KindString, fd.Kind)
	assert.Empty(t, fd.External)
	assert.False(t, fd.List)
	assert.Empty(t, fd.Index)

	fd = field.String("name").
		Predicate("name").
		Index(field.IndexHash).
		Descriptor()
	assert.Equal(t, "name", fd.External)
	assert.Equal(t, "hash", fd.Index)
}

func TestKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		desc     *schema.Property
		expected schema.Kind
	}{
		{"string", field.String("v").Descriptor(), schema.KindString},
		{"int", field.Int("v").Descriptor(), schema.KindInt},
		{"float", field.Float("v").Descriptor(), schema.KindFloat},
		{"bool", field.Bool("v").Descriptor(), schema.KindBool},
		{"datetime", field.DateTime("v").Descriptor(), schema.KindDateTime},
		{"geo", field.Geo("v").Descriptor(), schema.KindGeo},
		{"password", field.Password("v").Descriptor(), schema.KindPassword},
		{"uid", field.UID("v").Descriptor(), schema.KindUID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.desc.Kind)
			assert.Equal(t, "v", tt.desc.Name)
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	fd := field.String("hobbies").List().Descriptor()
	assert.True(t, fd.List)
	assert.Equal(t, schema.KindString, fd.Kind)
}

func TestUIDRegistration(t *testing.T) {
	t.Parallel()

	r := schema.NewRegistry()
	r.AddProperty("Person", field.UID("id").Descriptor())
	r.AddProperty("Person", field.String("name").Descriptor())

	assert.Equal(t, "id", r.Type("Person").UIDField)
	assert.Len(t, r.PropertiesOf("Person"), 1)
}
