package internal

import "strings"

// LookupValue finds name in the caller's context data. An exact match
// always wins; with ignoreCase a case-folded match is accepted as a
// fallback, so enabling ignoreCase can never turn a previously matching
// lookup into a miss. When several keys fold to the same name the
// lexicographically smallest key is chosen, keeping lookups deterministic
// across map iteration orders.
func LookupValue(data map[string]any, name string, ignoreCase bool) (any, bool) {
	if data == nil {
		return nil, false
	}
	if v, ok := data[name]; ok {
		return v, true
	}
	if !ignoreCase {
		return nil, false
	}

	var (
		best  string
		value any
		found bool
	)
	for k, v := range data {
		if !strings.EqualFold(k, name) {
			continue
		}
		if !found || k < best {
			best, value, found = k, v, true
		}
	}
	return value, found
}

// BindArgs derives the argument list for a resolver from the context
// entry matching the token name. No entry yields zero arguments, a
// scalar yields one, a sequence is spread into one argument per element.
func BindArgs(data map[string]any, name string, ignoreCase bool) []any {
	v, ok := LookupValue(data, name, ignoreCase)
	if !ok {
		return nil
	}
	if seq, isSeq := AsSequence(v); isSeq {
		return seq
	}
	return []any{v}
}
