package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register("shoe_size", Integer(nil, nil))
	require.NoError(t, err)

	v, err := reg.Resolve("shoe_size")
	require.NoError(t, err)
	assert.True(t, v("42").Accepted)
}

func TestRegisterDuplicateFails(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("name", Text(0, 0)))

	err := reg.Register("name", Text(1, 10))
	var dup DuplicateValidatorError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Name)
}

func TestReplaceOverrides(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("name", Text(0, 0)))
	require.NoError(t, reg.Replace("name", Text(5, 0)))

	v, err := reg.Resolve("name")
	require.NoError(t, err)
	assert.False(t, v("Bo").Accepted, "replaced validator must apply the new minimum length")
}

func TestResolveUnknownFails(t *testing.T) {
	reg := Builtin()

	_, err := reg.Resolve("no_such")
	var unknown UnknownValidatorError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no_such", unknown.Name)
}

func TestRegisterRejectsInvalidNames(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register("Bad-Name", Text(0, 0)))
	assert.Error(t, reg.Register("func", Text(0, 0)), "language keywords are not identifiers")
	assert.Error(t, reg.Register("", Text(0, 0)))
}

func TestBuiltinSet(t *testing.T) {
	reg := Builtin()

	for _, name := range []string{"text", "integer", "float", "number", "date", "email", "phone"} {
		_, err := reg.Resolve(name)
		assert.NoError(t, err, name)
	}
}

func TestNamesSorted(t *testing.T) {
	reg := Builtin()
	require.NoError(t, reg.Register("age_range", Integer(nil, nil)))

	assert.Equal(t,
		[]string{"age_range", "date", "email", "float", "integer", "number", "phone", "text"},
		reg.Names())
}

func TestRegisterDefinitionKeepsIntrospection(t *testing.T) {
	reg := NewRegistry()
	err := reg.RegisterDefinition("yes_no", Definition{Type: "choice", Options: []string{"yes", "no"}})
	require.NoError(t, err)

	def, ok := reg.Definition("yes_no")
	require.True(t, ok)
	assert.Equal(t, []string{"yes", "no"}, def.Options)

	_, ok = reg.Definition("missing")
	assert.False(t, ok)
}
