// Package subst provides a general-purpose token substitution engine with a
// pluggable resolver architecture.
//
// Subst scans a template for placeholders bounded by %{ and }% delimiters and
// replaces each one with a value computed from named resolver functions and a
// caller-supplied context map:
//
//	Hello, %{user}%!
//
// # Basic Usage
//
// Create a processor and process templates:
//
//	p := subst.MustNew()
//	result, err := p.Process("Hello, %{user}%!", map[string]any{
//	    "user": "Alice",
//	})
//	// result: "Hello, Alice!"
//
// # Resolution Order
//
// For each token, subst tries in order:
//
//  1. A resolver registered under the token name, invoked with arguments
//     bound implicitly from the context entry of the same name (a scalar
//     becomes one argument, a sequence is spread into several, a missing
//     entry means zero arguments). A resolver returning a nil value yields
//     no substitution and resolution continues.
//  2. The context value itself, spliced in directly.
//  3. The token's default clause, when default values are enabled.
//  4. The ignore-missing policy: keep the literal token text, or
//     substitute an empty string.
//
// # Default Clauses
//
// With WithDefaultValues(true) a token may carry fallback text after a |
// separator. A backslash escapes a literal separator inside the default:
//
//	%{name|guest}%          -> "guest" when name is unresolved
//	%{path|a\|b}%           -> default text "a|b"
//
// # Custom Resolvers
//
// Resolvers are plain functions grouped into registries. A processor is
// built from an ordered registry list; the first registry containing a
// name wins, so later registries act as overridable fallbacks:
//
//	reg := subst.NewRegistryFromMap(map[string]subst.ResolverFunc{
//	    "appName": func(args []any) (any, error) { return "MyService", nil },
//	    "upper": func(args []any) (any, error) {
//	        if len(args) == 0 {
//	            return nil, nil // no value, fall through to context/default
//	        }
//	        return strings.ToUpper(fmt.Sprint(args[0])), nil
//	    },
//	})
//	p := subst.MustNew(subst.WithRegistries(reg), subst.WithBuiltins())
//
// # Concurrency
//
// A configured Processor is immutable during processing and safe for
// concurrent use; each Process call is a pure function of its inputs.
//
// # Configuration
//
// Customize the processor with functional options:
//
//	p, _ := subst.New(
//	    subst.WithDelimiters("${", "}"),
//	    subst.WithDefaultValues(true),
//	    subst.WithIgnoreMissing(true),
//	    subst.WithLogger(logger),
//	)
//
// The same options can be applied per call via ProcessWithOptions without
// mutating the shared processor.
package subst
