package refl_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyplate/tinyplate/fixture"
	"github.com/tinyplate/tinyplate/internal/refl"
)

type (
	structWithEmbedded struct {
		B int `tinyplate:"b"`
		embedded
	}

	structWithTaggedEmbedded struct {
		B        int `tinyplate:"b"`
		embedded `tinyplate:"emb"`
	}

	structWithIgnoredEmbedded struct {
		B        int `path:"b" tinyplate:"-"`
		embedded `tinyplate:"-"`
	}

	structWithShadow struct {
		A string
		embedded
		hidden int
	}

	embedded struct {
		A int `tinyplate:"a,omitempty"`
		C int
	}

	node struct {
		*node
		X int
	}

	wrappedPtr struct {
		*fixture.Disambiguation
	}

	wrappedValue struct {
		fixture.Bean
		wrappedPtr
	}

	describer interface {
		Describe() string
	}

	wrappedInterface struct {
		describer
	}
)

func (n *node) Depth() int {
	if n.node == nil {
		return 0
	}

	return 1 + n.node.Depth()
}

func TestExported(t *testing.T) {
	assert.Equal(t, "Foo", refl.Exported("foo"))
	assert.Equal(t, "Foo", refl.Exported("Foo"))
	assert.Equal(t, "", refl.Exported(""))
	assert.Equal(t, "Ämber", refl.Exported("ämber"))
	assert.Equal(t, "foo", refl.Unexported("Foo"))
	assert.Equal(t, "", refl.Unexported(""))
}

func TestPropertyName(t *testing.T) {
	d := reflect.TypeOf(fixture.Disambiguation{})
	assert.Equal(t, "foo", refl.PropertyName(d.Field(0), "tinyplate"))
	assert.Equal(t, "fooField", refl.PropertyName(d.Field(0), "json"))

	e := reflect.TypeOf(embedded{})
	assert.Equal(t, "a", refl.PropertyName(e.Field(0), "tinyplate"))
	assert.Equal(t, "c", refl.PropertyName(e.Field(1), "tinyplate"))

	s := reflect.TypeOf(structWithShadow{})
	assert.Equal(t, "", refl.PropertyName(s.Field(2), "tinyplate"))

	i := reflect.TypeOf(structWithIgnoredEmbedded{})
	assert.Equal(t, "", refl.PropertyName(i.Field(0), "tinyplate"))
}

func TestFieldByProperty(t *testing.T) {
	idx, ok := refl.FieldByProperty(reflect.TypeOf(fixture.Disambiguation{}), "foo", "tinyplate")
	require.True(t, ok)
	assert.Equal(t, []int{0}, idx)

	_, ok = refl.FieldByProperty(reflect.TypeOf(fixture.Disambiguation{}), "fooField", "tinyplate")
	assert.False(t, ok)

	idx, ok = refl.FieldByProperty(reflect.TypeOf(new(structWithEmbedded)), "a", "tinyplate")
	require.True(t, ok)
	assert.Equal(t, []int{1, 0}, idx)

	idx, ok = refl.FieldByProperty(reflect.TypeOf(structWithTaggedEmbedded{}), "emb", "tinyplate")
	require.True(t, ok)
	assert.Equal(t, []int{1}, idx)

	_, ok = refl.FieldByProperty(reflect.TypeOf(structWithTaggedEmbedded{}), "a", "tinyplate")
	assert.False(t, ok)

	_, ok = refl.FieldByProperty(reflect.TypeOf(structWithIgnoredEmbedded{}), "a", "tinyplate")
	assert.False(t, ok)

	idx, ok = refl.FieldByProperty(reflect.TypeOf(structWithShadow{}), "a", "tinyplate")
	require.True(t, ok)
	assert.Equal(t, []int{0}, idx)

	idx, ok = refl.FieldByProperty(reflect.TypeOf(structWithShadow{}), "c", "tinyplate")
	require.True(t, ok)
	assert.Equal(t, []int{1, 1}, idx)

	_, ok = refl.FieldByProperty(reflect.TypeOf(structWithShadow{}), "hidden", "tinyplate")
	assert.False(t, ok)

	_, ok = refl.FieldByProperty(reflect.TypeOf(1), "a", "tinyplate")
	assert.False(t, ok)
}

func TestFieldProperties(t *testing.T) {
	assert.Equal(t, map[string][]int{
		"faa": {0},
		"foo": {1},
		"fuu": {2},
	}, refl.FieldProperties(reflect.TypeOf(fixture.NewFields()), "tinyplate"))

	assert.Equal(t, map[string][]int{
		"a": {0},
		"c": {1, 1},
	}, refl.FieldProperties(reflect.TypeOf(new(structWithShadow)), "tinyplate"))

	assert.Empty(t, refl.FieldProperties(reflect.TypeOf(structWithIgnoredEmbedded{}), "tinyplate"))
}

func TestFieldByProperty_selfEmbedded(t *testing.T) {
	idx, ok := refl.FieldByProperty(reflect.TypeOf(node{}), "x", "tinyplate")
	require.True(t, ok)
	assert.Equal(t, []int{1}, idx)

	_, ok = refl.FieldByProperty(reflect.TypeOf(node{}), "missing", "tinyplate")
	assert.False(t, ok)

	assert.Equal(t, map[string][]int{"x": {1}}, refl.FieldProperties(reflect.TypeOf(&node{}), "tinyplate"))
}

func TestHasNilEmbedded(t *testing.T) {
	d := fixture.NewDisambiguation()

	assert.True(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedPtr{}), "Foo"))
	assert.True(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedPtr{}), "GetFoo"))
	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedPtr{Disambiguation: &d}), "Foo"))
	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedPtr{}), "Missing"))

	// Bean.GetFoo is shallower than the one promoted through wrappedPtr.
	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedValue{}), "GetFoo"))
	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedValue{}), "GetFaa"))
	assert.True(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedValue{}), "Foo"))

	assert.True(t, refl.HasNilEmbedded(reflect.ValueOf(wrappedInterface{}), "Describe"))

	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(node{}), "Depth"))
	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(node{node: &node{}}), "Depth"))
	assert.False(t, refl.HasNilEmbedded(reflect.ValueOf(1), "Depth"))
}
