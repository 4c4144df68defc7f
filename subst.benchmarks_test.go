package subst

import (
	"strings"
	"testing"
)

func BenchmarkProcess_SmallTemplate(b *testing.B) {
	p := MustNew()
	data := map[string]any{"user": "Alice"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Process("Hello, %{user}%!", data)
	}
}

func BenchmarkProcess_ManyTokens(b *testing.B) {
	var sb strings.Builder
	data := make(map[string]any)
	for i := 0; i < 100; i++ {
		sb.WriteString("field=%{name}% ")
	}
	data["name"] = "value"
	template := sb.String()
	p := MustNew()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Process(template, data)
	}
}

func BenchmarkProcess_WithResolverAndDefaults(b *testing.B) {
	p := MustNew(WithBuiltins(), WithDefaultValues(true))
	data := map[string]any{"sum": []any{10, 20, 30}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Process("Sum=%{sum|0}% Missing=%{gone|none}%", data)
	}
}

func BenchmarkProcess_NoTokens(b *testing.B) {
	p := MustNew()
	template := strings.Repeat("plain text without any tokens ", 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Process(template, nil)
	}
}
