package param

import (
	"fmt"
	"net/url"
	"strings"
)

// Mode selects which part of the URL carries the parameters.
type Mode int

const (
	// ModeQuery keeps parameters in the query string.
	ModeQuery Mode = iota
	// ModeHash keeps parameters in the fragment, formatted like a query.
	ModeHash
)

// ParseMode maps "hash" to ModeHash and anything else to ModeQuery.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "hash") {
		return ModeHash
	}
	return ModeQuery
}

func (m Mode) String() string {
	if m == ModeHash {
		return "hash"
	}
	return "query"
}

// Store reads and writes one board's parameters through its URL.
//
// The URL is the only state: every read parses it again and every write
// re-serializes it. Writes made inside Batch are committed to the History
// as a single entry. A Store is not safe for concurrent use.
type Store struct {
	table   *Table
	mode    Mode
	u       *url.URL
	history History

	depth     int
	dirty     bool
	committed string
}

// NewStore opens a store over rawURL. history may be nil.
func NewStore(table *Table, rawURL string, mode Mode, history History) (*Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse board url: %w", err)
	}
	s := &Store{table: table, mode: mode, u: u, history: history}
	s.committed = s.u.String()
	return s, nil
}

// Table returns the parameter table the store was opened with.
func (s *Store) Table() *Table { return s.table }

// Mode returns where the store keeps its parameters.
func (s *Store) Mode() Mode { return s.mode }

// URL returns the full URL in its current canonical form.
func (s *Store) URL() string { return s.u.String() }

// Encoded returns only the serialized parameter collection.
func (s *Store) Encoded() string { return s.rawParams() }

// IsEmpty reports whether the URL carries no parameters at all.
func (s *Store) IsEmpty() bool { return len(s.values()) == 0 }

// Raw returns the raw URL value of key and whether it is present.
func (s *Store) Raw(key string) (string, bool) {
	vals := s.values()
	if _, ok := vals[key]; !ok {
		return "", false
	}
	return vals.Get(key), true
}

// Value decodes the current value of a declared key. Unknown keys yield nil.
func (s *Store) Value(key string) any {
	raw, ok := s.Raw(key)
	return s.table.Decode(key, raw, ok)
}

// Values decodes every declared key.
func (s *Store) Values() map[string]any {
	vals := s.values()
	out := make(map[string]any, len(s.table.defs))
	for _, d := range s.table.defs {
		_, ok := vals[d.Key()]
		out[d.Key()] = d.decodeAny(vals.Get(d.Key()), ok)
	}
	return out
}

// Set writes value for key. value may be the parameter's own type or its raw
// string form. Writing the default removes the key from the URL.
func (s *Store) Set(key string, value any) error {
	raw, present, err := s.table.Encode(key, value)
	if err != nil {
		return err
	}
	s.put(key, raw, present)
	return nil
}

// Reset removes every declared key from the URL. Unknown keys are kept.
func (s *Store) Reset() {
	vals := s.values()
	for _, d := range s.table.defs {
		vals.Del(d.Key())
	}
	s.write(vals)
}

// Normalize rewrites every declared key present in the URL through its
// codec, dropping values that decode to the default.
func (s *Store) Normalize() {
	vals := s.values()
	for _, d := range s.table.defs {
		if _, ok := vals[d.Key()]; !ok {
			continue
		}
		raw, present, err := d.encodeAny(d.decodeAny(vals.Get(d.Key()), true))
		if err != nil || !present {
			vals.Del(d.Key())
			continue
		}
		vals.Set(d.Key(), raw)
	}
	s.write(vals)
}

// Batch runs fn and commits every write it made as one history entry.
// Batches nest; only the outermost one commits.
func (s *Store) Batch(fn func()) {
	s.depth++
	defer func() {
		s.depth--
		if s.depth == 0 && s.dirty {
			s.dirty = false
			s.commit()
		}
	}()
	fn()
}

// Get decodes the current value of p.
func Get[T comparable](s *Store, p Param[T]) T {
	raw, ok := s.Raw(p.Key())
	return p.Decode(raw, ok)
}

// Set writes v for p, removing the key when v is the default.
func Set[T comparable](s *Store, p Param[T], v T) {
	raw, present := p.Encode(v)
	s.put(p.Key(), raw, present)
}

func (s *Store) put(key, raw string, present bool) {
	vals := s.values()
	if present {
		vals.Set(key, raw)
	} else {
		vals.Del(key)
	}
	s.write(vals)
}

func (s *Store) rawParams() string {
	if s.mode == ModeHash {
		return s.u.EscapedFragment()
	}
	return s.u.RawQuery
}

// values parses the parameter collection. Pairs that fail to unescape are
// dropped; the rest are kept.
func (s *Store) values() url.Values {
	vals, _ := url.ParseQuery(s.rawParams())
	if vals == nil {
		vals = url.Values{}
	}
	return vals
}

func (s *Store) write(vals url.Values) {
	encoded := vals.Encode()
	if s.mode == ModeHash {
		frag, err := url.PathUnescape(encoded)
		if err != nil {
			frag = encoded
		}
		s.u.Fragment = frag
		s.u.RawFragment = encoded
	} else {
		s.u.RawQuery = encoded
	}
	if s.depth > 0 {
		s.dirty = true
		return
	}
	s.commit()
}

func (s *Store) commit() {
	current := s.u.String()
	if current == s.committed {
		return
	}
	s.committed = current
	if s.history != nil {
		s.history.Push(current)
	}
}
