package param

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a write names a key that is not declared.
var ErrUnknownKey = errors.New("unknown parameter")

// Definition is the untyped view of a Param used by Table and Store.
type Definition interface {
	Key() string
	DefaultValue() any

	decodeAny(raw string, ok bool) any
	encodeAny(v any) (string, bool, error)
}

var (
	_ Definition = Param[string]{}
	_ Definition = Param[int]{}
	_ Definition = Param[bool]{}
	_ Definition = Param[TimeOfDay]{}
)

// Table is the immutable set of parameters declared for one kind of board.
type Table struct {
	defs  []Definition
	byKey map[string]Definition
}

// NewTable builds a table in declaration order. Declaring the same key twice
// is a programming error and panics.
func NewTable(defs ...Definition) *Table {
	t := &Table{
		defs:  make([]Definition, 0, len(defs)),
		byKey: make(map[string]Definition, len(defs)),
	}
	for _, d := range defs {
		if _, dup := t.byKey[d.Key()]; dup {
			panic(fmt.Sprintf("param: duplicate key %q", d.Key()))
		}
		t.defs = append(t.defs, d)
		t.byKey[d.Key()] = d
	}
	return t
}

// Lookup returns the definition declared for key.
func (t *Table) Lookup(key string) (Definition, bool) {
	d, ok := t.byKey[key]
	return d, ok
}

// Definitions returns the declared parameters in declaration order.
func (t *Table) Definitions() []Definition {
	out := make([]Definition, len(t.defs))
	copy(out, t.defs)
	return out
}

// Keys returns the declared keys in declaration order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.defs))
	for i, d := range t.defs {
		keys[i] = d.Key()
	}
	return keys
}

// Defaults returns every declared key mapped to its default.
func (t *Table) Defaults() map[string]any {
	out := make(map[string]any, len(t.defs))
	for _, d := range t.defs {
		out[d.Key()] = d.DefaultValue()
	}
	return out
}

// Encode converts v for key. present is false when the key must be absent
// from the URL because v is the default.
func (t *Table) Encode(key string, v any) (raw string, present bool, err error) {
	d, ok := t.byKey[key]
	if !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return d.encodeAny(v)
}

// Decode converts the raw URL value for key. Unknown keys decode to nil.
func (t *Table) Decode(key, raw string, ok bool) any {
	d, found := t.byKey[key]
	if !found {
		return nil
	}
	return d.decodeAny(raw, ok)
}
