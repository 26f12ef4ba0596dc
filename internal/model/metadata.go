package model

import (
	"fmt"
	"strings"
)

// Reserved metadata keys managed or interpreted by the store.
const (
	KeyStatus   = "status"
	KeyPriority = "priority"
	KeyTags     = "tags"
	KeyCreated  = "created"
	KeyUpdated  = "updated"
)

// Value is a frontmatter metadata value: either a scalar string or a
// sequence of strings. YAML scalars of other types (ints, bools, dates)
// are carried as their string form.
type Value struct {
	items []string
	list  bool
}

// String returns a scalar Value.
func String(s string) Value {
	return Value{items: []string{s}}
}

// Strings returns a sequence Value.
func Strings(items ...string) Value {
	return Value{items: items, list: true}
}

// IsList reports whether the value was a YAML sequence.
func (v Value) IsList() bool { return v.list }

// IsZero reports whether the value holds nothing.
func (v Value) IsZero() bool { return len(v.items) == 0 && !v.list }

// Scalar returns the single value, or the first element of a sequence.
func (v Value) Scalar() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// List returns the value as a slice, wrapping a scalar in a one-element
// slice. The returned slice is a copy.
func (v Value) List() []string {
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out
}

// Normalized returns the value as a slice of lowercase strings, the form
// all metadata matching operates on.
func (v Value) Normalized() []string {
	out := make([]string, len(v.items))
	for i, s := range v.items {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Contains reports whether the normalized value contains s (compared
// lowercase).
func (v Value) Contains(s string) bool {
	s = strings.ToLower(s)
	for _, item := range v.items {
		if strings.ToLower(item) == s {
			return true
		}
	}
	return false
}

func (v Value) String() string {
	if v.list {
		return strings.Join(v.items, ", ")
	}
	return v.Scalar()
}

// Field is a single metadata entry.
type Field struct {
	Key   string
	Value Value
}

// Metadata is an ordered mapping of string keys to Values. Insertion order
// is preserved so documents round-trip without reshuffling their
// frontmatter.
type Metadata []Field

// Get returns the value for key and whether it is present.
func (m Metadata) Get(key string) (Value, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (m Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set overwrites the value for key in place, appending when absent.
func (m *Metadata) Set(key string, v Value) {
	for i, f := range *m {
		if f.Key == key {
			(*m)[i].Value = v
			return
		}
	}
	*m = append(*m, Field{Key: key, Value: v})
}

// Merge applies every field of other onto m: shallow key overwrite, new
// keys appended in other's order.
func (m *Metadata) Merge(other Metadata) {
	for _, f := range other {
		m.Set(f.Key, f.Value)
	}
}

// Clone returns a copy sharing no backing array with m.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	copy(out, m)
	return out
}

// Subset returns the fields of m whose keys appear in keys, preserving
// m's order.
func (m Metadata) Subset(keys ...string) Metadata {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out Metadata
	for _, f := range m {
		if want[f.Key] {
			out = append(out, f)
		}
	}
	return out
}

// ValueOf converts a decoded YAML value into a Value.
func ValueOf(raw interface{}) Value {
	switch t := raw.(type) {
	case []interface{}:
		items := make([]string, len(t))
		for i, e := range t {
			items[i] = stringify(e)
		}
		return Strings(items...)
	default:
		return String(stringify(raw))
	}
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
