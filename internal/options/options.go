// Package options holds the flat, dot-namespaced option bag of one run.
//
// Keys look like "port", "ssl.self" or "bot.botToken". A value may also be a
// nested map under the bare namespace ("ssl" => {"self": true}); Sub merges both
// forms so a task sees the same options however the caller supplied them.
package options

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Options maps option keys to scalar values or nested maps.
type Options map[string]any

// New returns an empty bag.
func New() Options {
	return Options{}
}

// FromMap copies m into a new bag.
func FromMap(m map[string]any) Options {
	o := make(Options, len(m))
	maps.Copy(o, m)
	return o
}

// Set stores value under key, replacing any previous value.
func (o Options) Set(key string, value any) {
	o[key] = value
}

// Get returns the value stored under key.
func (o Options) Get(key string) (any, bool) {
	v, ok := o[key]
	return v, ok
}

// Has reports whether key is present, even when its value is false or empty.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Delete removes key.
func (o Options) Delete(key string) {
	delete(o, key)
}

// String returns the value under key formatted as a string, or "" when absent.
func (o Options) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// StringOr returns the value under key, or def when it is absent or empty.
func (o Options) StringOr(key, def string) string {
	if s := o.String(key); s != "" {
		return s
	}
	return def
}

// Bool interprets the value under key as a boolean.
// Strings such as "true", "yes", "y", "on" and "1" count as true.
func (o Options) Bool(key string) bool {
	switch v := o[key].(type) {
	case bool:
		return v
	case string:
		return IsTruthy(v)
	case int:
		return v != 0
	}
	return false
}

// Int interprets the value under key as an integer.
// The boolean is false when the key is absent or not a number.
func (o Options) Int(key string) (int, bool) {
	switch v := o[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// IntOr returns Int(key), or def when the value is not a number.
func (o Options) IntOr(key string, def int) int {
	if n, ok := o.Int(key); ok {
		return n
	}
	return def
}

// Merge copies every key of other into o, overwriting existing values.
func (o Options) Merge(other Options) {
	maps.Copy(o, other)
}

// Clone returns a shallow copy.
func (o Options) Clone() Options {
	return FromMap(o)
}

// Sub collects the options of namespace ns.
// The nested value stored under ns (if it is a map) is taken first, then every
// "ns.key" entry is overlaid as "key".
func (o Options) Sub(ns string) Options {
	sub := New()
	switch nested := o[ns].(type) {
	case Options:
		maps.Copy(sub, nested)
	case map[string]any:
		maps.Copy(sub, nested)
	}
	prefix := ns + "."
	for k, v := range o {
		if rest, ok := strings.CutPrefix(k, prefix); ok && rest != "" {
			sub[rest] = v
		}
	}
	return sub
}

// Nested expands dotted keys into nested maps, for use as template data.
// "ssl.self" becomes {"ssl": {"self": ...}}; an existing nested map is merged.
func (o Options) Nested() map[string]any {
	out := make(map[string]any, len(o))
	for _, k := range o.Keys() {
		setPath(out, strings.Split(k, "."), o[k])
	}
	return out
}

func setPath(m map[string]any, parts []string, value any) {
	if len(parts) == 1 {
		if existing, ok := m[parts[0]].(map[string]any); ok {
			if nested, ok := asMap(value); ok {
				for k, v := range nested {
					setPath(existing, []string{k}, v)
				}
				return
			}
		}
		if nested, ok := asMap(value); ok {
			value = maps.Clone(nested)
		}
		m[parts[0]] = value
		return
	}
	child, ok := m[parts[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[parts[0]] = child
	}
	setPath(child, parts[1:], value)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Options:
		return map[string]any(m), true
	case map[string]any:
		return m, true
	}
	return nil, false
}

// Keys returns the keys in sorted order.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// IsTruthy reports whether s reads as an affirmative value.
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
