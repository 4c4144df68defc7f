package subst

import (
	"os"
	"strings"
	"time"

	"github.com/itsatony/go-subst/internal"
)

// Built-in resolver names
const (
	BuiltinNameUpper = "upper"
	BuiltinNameLower = "lower"
	BuiltinNameTrim  = "trim"
	BuiltinNameLen   = "len"
	BuiltinNameJoin  = "join"
	BuiltinNameFirst = "first"
	BuiltinNameLast  = "last"
	BuiltinNameSum   = "sum"
	BuiltinNameAvg   = "avg"
	BuiltinNameMin   = "min"
	BuiltinNameMax   = "max"
	BuiltinNameNow   = "now"
	BuiltinNameEnv   = "env"
)

// BuiltinJoinSeparator joins sequence arguments in the join builtin.
const BuiltinJoinSeparator = ", "

// Builtins returns a fresh registry of built-in resolvers. Argument-
// consuming builtins signal "no value" when invoked with zero arguments,
// so a token like %{upper}% with no matching context entry falls through
// to its default clause instead of rendering an empty transformation.
//
// The registry is freshly built on each call; callers may extend it
// without affecting other processors.
func Builtins() *Registry {
	r := NewRegistry()

	// String transforms over the first bound argument.
	r.MustRegister(BuiltinNameUpper, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		return strings.ToUpper(internal.ToString(args[0])), nil
	})
	r.MustRegister(BuiltinNameLower, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		return strings.ToLower(internal.ToString(args[0])), nil
	})
	r.MustRegister(BuiltinNameTrim, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		return strings.TrimSpace(internal.ToString(args[0])), nil
	})

	// Aggregates over the full spread argument list.
	r.MustRegister(BuiltinNameLen, func(args []any) (any, error) {
		if len(args) == 1 {
			if s, ok := args[0].(string); ok {
				return len(s), nil
			}
		}
		if len(args) == 0 {
			return nil, nil
		}
		return len(args), nil
	})
	r.MustRegister(BuiltinNameJoin, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = internal.ToString(a)
		}
		return strings.Join(parts, BuiltinJoinSeparator), nil
	})
	r.MustRegister(BuiltinNameFirst, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		return args[0], nil
	})
	r.MustRegister(BuiltinNameLast, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		return args[len(args)-1], nil
	})
	r.MustRegister(BuiltinNameSum, sumResolver)
	r.MustRegister(BuiltinNameAvg, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		total, err := sumResolver(args)
		if err != nil || total == nil {
			return nil, err
		}
		return total.(float64) / float64(len(args)), nil
	})
	r.MustRegister(BuiltinNameMin, func(args []any) (any, error) {
		return extremum(BuiltinNameMin, args, func(candidate, best float64) bool { return candidate < best })
	})
	r.MustRegister(BuiltinNameMax, func(args []any) (any, error) {
		return extremum(BuiltinNameMax, args, func(candidate, best float64) bool { return candidate > best })
	})

	// Producers: useful with zero arguments.
	r.MustRegister(BuiltinNameNow, func(args []any) (any, error) {
		return time.Now().UTC().Format(time.RFC3339), nil
	})
	r.MustRegister(BuiltinNameEnv, func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		value, ok := os.LookupEnv(internal.ToString(args[0]))
		if !ok {
			return nil, nil
		}
		return value, nil
	})

	return r
}

// sumResolver adds all numeric arguments. Non-numeric arguments are a
// resolver fault; zero arguments signal "no value".
func sumResolver(args []any) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	var total float64
	for _, a := range args {
		f, ok := internal.ToFloat(a)
		if !ok {
			return nil, NewRegistryError(ErrMsgNonNumericArgument, BuiltinNameSum)
		}
		total += f
	}
	return total, nil
}

// extremum returns the argument minimizing/maximizing its numeric value.
func extremum(name string, args []any, better func(candidate, best float64) bool) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	bestVal, ok := internal.ToFloat(args[0])
	if !ok {
		return nil, NewRegistryError(ErrMsgNonNumericArgument, name)
	}
	best := args[0]
	for _, a := range args[1:] {
		f, fok := internal.ToFloat(a)
		if !fok {
			return nil, NewRegistryError(ErrMsgNonNumericArgument, name)
		}
		if better(f, bestVal) {
			best, bestVal = a, f
		}
	}
	return best, nil
}
