package subst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callBuiltin(t *testing.T, name string, args ...any) any {
	t.Helper()
	fn, ok := Builtins().Lookup(name, false)
	require.True(t, ok, "builtin %s not registered", name)
	v, err := fn(args)
	require.NoError(t, err)
	return v
}

func TestBuiltins_StringTransforms(t *testing.T) {
	assert.Equal(t, "HELLO", callBuiltin(t, BuiltinNameUpper, "hello"))
	assert.Equal(t, "hello", callBuiltin(t, BuiltinNameLower, "HELLO"))
	assert.Equal(t, "x", callBuiltin(t, BuiltinNameTrim, "  x  "))
}

func TestBuiltins_ZeroArgsSignalNoValue(t *testing.T) {
	noValueBuiltins := []string{
		BuiltinNameUpper, BuiltinNameLower, BuiltinNameTrim,
		BuiltinNameLen, BuiltinNameJoin, BuiltinNameFirst, BuiltinNameLast,
		BuiltinNameSum, BuiltinNameAvg, BuiltinNameMin, BuiltinNameMax,
		BuiltinNameEnv,
	}
	for _, name := range noValueBuiltins {
		assert.Nil(t, callBuiltin(t, name), "builtin %s", name)
	}
}

func TestBuiltins_Aggregates(t *testing.T) {
	assert.Equal(t, 60.0, callBuiltin(t, BuiltinNameSum, 10, 20, 30))
	assert.Equal(t, 20.0, callBuiltin(t, BuiltinNameAvg, 10, 20, 30))
	assert.Equal(t, 10, callBuiltin(t, BuiltinNameMin, 30, 10, 20))
	assert.Equal(t, 30, callBuiltin(t, BuiltinNameMax, 30, 10, 20))
	assert.Equal(t, 3, callBuiltin(t, BuiltinNameLen, 1, 2, 3))
	assert.Equal(t, 5, callBuiltin(t, BuiltinNameLen, "hello"))
	assert.Equal(t, "a, b, c", callBuiltin(t, BuiltinNameJoin, "a", "b", "c"))
	assert.Equal(t, "x", callBuiltin(t, BuiltinNameFirst, "x", "y"))
	assert.Equal(t, "y", callBuiltin(t, BuiltinNameLast, "x", "y"))
}

func TestBuiltins_SumMixedNumericTypes(t *testing.T) {
	assert.Equal(t, 6.5, callBuiltin(t, BuiltinNameSum, 1, 2.5, int64(3)))
}

func TestBuiltins_NonNumericAggregateIsError(t *testing.T) {
	fn, _ := Builtins().Lookup(BuiltinNameSum, false)
	_, err := fn([]any{"not a number"})
	require.Error(t, err)

	fn, _ = Builtins().Lookup(BuiltinNameMin, false)
	_, err = fn([]any{1, "x"})
	require.Error(t, err)
}

func TestBuiltins_Now(t *testing.T) {
	v := callBuiltin(t, BuiltinNameNow)
	s, ok := v.(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, s)
	assert.NoError(t, err)
}

func TestBuiltins_Env(t *testing.T) {
	t.Setenv("SUBST_TEST_ENV", "from-env")
	assert.Equal(t, "from-env", callBuiltin(t, BuiltinNameEnv, "SUBST_TEST_ENV"))
	assert.Nil(t, callBuiltin(t, BuiltinNameEnv, "SUBST_TEST_ENV_ABSENT"))
}

func TestBuiltins_EndToEnd(t *testing.T) {
	p := MustNew(WithBuiltins(), WithDefaultValues(true))

	result, err := p.Process("Sum=%{sum|0}%", map[string]any{
		"sum": []any{10, 20, 30},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sum=60", result)

	result, err = p.Process("U=%{upper}%", map[string]any{"upper": "go"})
	require.NoError(t, err)
	assert.Equal(t, "U=GO", result)

	// Unbound transform falls through to its default clause.
	result, err = p.Process("U=%{upper|none}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "U=none", result)
}

func TestBuiltins_FreshRegistryPerCall(t *testing.T) {
	a := Builtins()
	b := Builtins()
	require.NoError(t, a.Register("custom", staticResolver(1)))
	assert.False(t, b.Has("custom", false))
}
