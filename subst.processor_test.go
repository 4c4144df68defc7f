package subst

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upperResolver(args []any) (any, error) {
	if len(args) == 0 {
		return "", nil
	}
	s, _ := args[0].(string)
	return strings.ToUpper(s), nil
}

func TestProcessor_ResolverProducesValue(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"appName": func(args []any) (any, error) { return "MyService", nil },
	})
	p := MustNew(WithRegistries(reg))

	result, err := p.Process("Service=%{appName}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "Service=MyService", result)
}

func TestProcessor_ResolverWithBoundArgument(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"upper": upperResolver,
	})
	p := MustNew(WithRegistries(reg))

	result, err := p.Process("USER=%{upper}%", map[string]any{
		"upper": "Hwang Yongho",
	})
	require.NoError(t, err)
	assert.Equal(t, "USER=HWANG YONGHO", result)
}

func TestProcessor_SequenceSpreadsIntoArguments(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"sum": func(args []any) (any, error) {
			var total float64
			for _, a := range args {
				n, _ := a.(int)
				total += float64(n)
			}
			return total, nil
		},
	})
	p := MustNew(WithRegistries(reg), WithDefaultValues(true))

	result, err := p.Process("Sum=%{sum|0}%", map[string]any{
		"sum": []any{10, 20, 30},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sum=60", result)
}

func TestProcessor_ContextFallbackCaseInsensitive(t *testing.T) {
	p := MustNew(WithDefaultValues(true))

	result, err := p.Process("User=%{name|guest}%", map[string]any{
		"NAME": "Hwang Yongho",
	})
	require.NoError(t, err)
	assert.Equal(t, "User=Hwang Yongho", result)
}

func TestProcessor_DefaultClauseUsed(t *testing.T) {
	p := MustNew(WithDefaultValues(true))

	result, err := p.Process("Raw=%{unknown|N/A}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "Raw=N/A", result)
}

func TestProcessor_EscapedDefaultDelimiter(t *testing.T) {
	p := MustNew(WithDefaultValues(true))

	result, err := p.Process(`v=%{x|a\|b}%`, nil)
	require.NoError(t, err)
	assert.Equal(t, "v=a|b", result)
}

func TestProcessor_NoTokensReturnsTemplateUnchanged(t *testing.T) {
	template := "plain text, no tokens at all"
	optionSets := [][]Option{
		nil,
		{WithIgnoreCase(false)},
		{WithIgnoreMissing(true)},
		{WithDefaultValues(true)},
		{WithIgnoreCase(false), WithIgnoreMissing(true), WithDefaultValues(true)},
	}

	for _, opts := range optionSets {
		p := MustNew(opts...)
		result, err := p.Process(template, map[string]any{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, template, result)
	}
}

func TestProcessor_MissingTokenPolicy(t *testing.T) {
	t.Run("empty substitution by default", func(t *testing.T) {
		p := MustNew()
		result, err := p.Process("a %{gone}% b", nil)
		require.NoError(t, err)
		assert.Equal(t, "a  b", result)
	})

	t.Run("literal passthrough with ignore missing", func(t *testing.T) {
		p := MustNew(WithIgnoreMissing(true))
		result, err := p.Process("a %{gone}% b", nil)
		require.NoError(t, err)
		assert.Equal(t, "a %{gone}% b", result)
	})
}

func TestProcessor_UnterminatedTokenIsLiteral(t *testing.T) {
	p := MustNew()
	result, err := p.Process("ok %{broken", map[string]any{"broken": "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok %{broken", result)
}

func TestProcessor_EmptyResultIsResolved(t *testing.T) {
	// An explicit empty string from a resolver is a value, not a miss.
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"blank": func(args []any) (any, error) { return "", nil },
	})
	p := MustNew(WithRegistries(reg), WithDefaultValues(true))

	result, err := p.Process("v=%{blank|fallback}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "v=", result)
}

func TestProcessor_NilResultFallsThrough(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"maybe": func(args []any) (any, error) { return nil, nil },
	})
	p := MustNew(WithRegistries(reg), WithDefaultValues(true))

	t.Run("to context", func(t *testing.T) {
		result, err := p.Process("v=%{maybe|d}%", map[string]any{"maybe": "ctx"})
		require.NoError(t, err)
		assert.Equal(t, "v=ctx", result)
	})

	t.Run("to default", func(t *testing.T) {
		result, err := p.Process("v=%{maybe|d}%", nil)
		require.NoError(t, err)
		assert.Equal(t, "v=d", result)
	})
}

func TestProcessor_RegistryPriorityOrder(t *testing.T) {
	primary := NewRegistryFromMap(map[string]ResolverFunc{
		"who": func(args []any) (any, error) { return "primary", nil },
	})
	fallback := NewRegistryFromMap(map[string]ResolverFunc{
		"who":   func(args []any) (any, error) { return "fallback", nil },
		"extra": func(args []any) (any, error) { return "extra", nil },
	})
	p := MustNew(WithRegistries(primary, fallback))

	result, err := p.Process("%{who}% %{extra}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "primary extra", result)
}

func TestProcessor_IgnoreCaseOffRequiresExactNames(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"AppName": func(args []any) (any, error) { return "svc", nil },
	})
	p := MustNew(WithRegistries(reg), WithIgnoreCase(false))

	result, err := p.Process("%{appname}%|%{AppName}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "|svc", result)
}

func TestProcessor_ContextValueTypes(t *testing.T) {
	p := MustNew()
	result, err := p.Process("%{n}% %{f}% %{b}% %{s}%", map[string]any{
		"n": 42,
		"f": 2.5,
		"b": true,
		"s": "str",
	})
	require.NoError(t, err)
	assert.Equal(t, "42 2.5 true str", result)
}

func TestProcessor_SequenceTerminalValueIsError(t *testing.T) {
	p := MustNew()
	_, err := p.Process("%{list}%", map[string]any{
		"list": []any{1, 2, 3},
	})
	require.Error(t, err)
	assert.False(t, IsResolverFault(err))
	assert.Contains(t, err.Error(), ErrMsgSequenceValue)
}

func TestProcessor_ResolverFaultDoesNotStopLaterTokens(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"boom": func(args []any) (any, error) { return nil, errors.New("kaput") },
		"ok":   func(args []any) (any, error) { return "fine", nil },
	})
	p := MustNew(WithRegistries(reg))

	result, err := p.Process("a=%{boom}% b=%{ok}%", nil)
	require.Error(t, err)
	assert.True(t, IsResolverFault(err))
	assert.Contains(t, err.Error(), ErrMsgResolverFault)
	// The later token still resolved.
	assert.Equal(t, "a= b=fine", result)
}

func TestProcessor_ResolverPanicBecomesFault(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"panic": func(args []any) (any, error) { panic("unexpected") },
	})
	p := MustNew(WithRegistries(reg))

	result, err := p.Process("x=%{panic}% y=%{y}%", map[string]any{"y": "ok"})
	require.Error(t, err)
	assert.True(t, IsResolverFault(err))
	assert.Equal(t, "x= y=ok", result)
}

func TestProcessor_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		msg  string
	}{
		{
			name: "empty start delimiter",
			opts: []Option{WithDelimiters("", "}%")},
			msg:  ErrMsgEmptyStartDelim,
		},
		{
			name: "empty end delimiter",
			opts: []Option{WithDelimiters("%{", "")},
			msg:  ErrMsgEmptyEndDelim,
		},
		{
			name: "equal delimiters",
			opts: []Option{WithDelimiters("@@", "@@")},
			msg:  ErrMsgEqualDelims,
		},
		{
			name: "default delimiter equals escape char",
			opts: []Option{WithDefaultValues(true), WithDefaultDelimiter('\\')},
			msg:  ErrMsgEscapeCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestProcessor_DelimiterEscapeCollisionAllowedWhenDefaultsOff(t *testing.T) {
	// defaultDelimiter == escapeChar only matters once both are meaningful.
	_, err := New(WithDefaultDelimiter('\\'))
	assert.NoError(t, err)
}

func TestProcessor_PerCallOverrides(t *testing.T) {
	p := MustNew()

	t.Run("delimiter override", func(t *testing.T) {
		result, err := p.ProcessWithDelimiters("v=${x}", "${", "}", map[string]any{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, "v=1", result)
	})

	t.Run("options overload", func(t *testing.T) {
		result, err := p.ProcessWithOptions("v=%{gone|d}%", nil, WithDefaultValues(true))
		require.NoError(t, err)
		assert.Equal(t, "v=d", result)
	})

	t.Run("override does not mutate shared state", func(t *testing.T) {
		_, err := p.ProcessWithOptions("x", nil, WithDefaultValues(true), WithIgnoreMissing(true))
		require.NoError(t, err)

		// Defaults still off on the shared processor.
		result, err := p.Process("v=%{gone|d}%", nil)
		require.NoError(t, err)
		assert.Equal(t, "v=", result)
	})

	t.Run("invalid per-call config fails fast", func(t *testing.T) {
		_, err := p.ProcessWithOptions("x", nil, WithDelimiters("", ""))
		require.Error(t, err)
	})
}

func TestProcessor_CustomDefaultDelimiterAndEscape(t *testing.T) {
	p := MustNew(WithDefaultValues(true), WithDefaultDelimiter(':'), WithEscapeChar('^'))

	result, err := p.Process("v=%{gone:fall^:back}%", nil)
	require.NoError(t, err)
	assert.Equal(t, "v=fall:back", result)
}

func TestProcessor_RepeatedProcessIsIdempotent(t *testing.T) {
	p := MustNew()
	data := map[string]any{"a": "a", "b": "b"}

	first, err := p.Process("%{a}%-%{b}%", data)
	require.NoError(t, err)
	assert.Equal(t, "a-b", first)

	// The substituted output contains no delimiters, so re-processing it
	// is a no-op.
	second, err := p.Process(first, data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProcessor_ConcurrentUse(t *testing.T) {
	reg := NewRegistryFromMap(map[string]ResolverFunc{
		"upper": upperResolver,
	})
	p := MustNew(WithRegistries(reg), WithDefaultValues(true))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				result, err := p.Process("u=%{upper}% d=%{gone|x}%", map[string]any{
					"upper": "go",
				})
				assert.NoError(t, err)
				assert.Equal(t, "u=GO d=x", result)
			}
		}()
	}
	wg.Wait()
}

func TestProcessor_NamedTemplates(t *testing.T) {
	p := MustNew()

	require.NoError(t, p.RegisterTemplate("greeting", "Hello, %{user}%!"))
	assert.True(t, p.HasTemplate("greeting"))
	assert.Equal(t, 1, p.TemplateCount())
	assert.Equal(t, []string{"greeting"}, p.ListTemplates())

	t.Run("duplicate registration rejected", func(t *testing.T) {
		err := p.RegisterTemplate("greeting", "other")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTemplateExists)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := p.RegisterTemplate("", "x")
		require.Error(t, err)
	})

	t.Run("process by name", func(t *testing.T) {
		result, err := p.ProcessTemplate("greeting", map[string]any{"user": "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, Alice!", result)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := p.ProcessTemplate("missing", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTemplateNotFound)
	})

	t.Run("unregister", func(t *testing.T) {
		assert.True(t, p.UnregisterTemplate("greeting"))
		assert.False(t, p.UnregisterTemplate("greeting"))
		assert.False(t, p.HasTemplate("greeting"))
	})
}

func TestProcessor_ProcessStored(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.Put(ctx, "welcome", "Welcome, %{user}%")
	require.NoError(t, err)

	p := MustNew()
	result, err := p.ProcessStored(ctx, store, "welcome", map[string]any{"user": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Bob", result)

	_, err = p.ProcessStored(ctx, store, "absent", nil)
	require.Error(t, err)
}

func TestMustNew_PanicsOnInvalidConfig(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(WithDelimiters("", ""))
	})
}
