// Package dict provides Dict, an insertion-ordered string-keyed container with
// the method set of Python's dict: default-valued lookups, pop/popitem,
// setdefault, and update from mappings or sequences of pairs.
//
// A Dict is not safe for concurrent use.
package dict

import (
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/zeusync/pydict/pkg/iterable"
)

var (
	_ iterable.Mapping  = (*Dict)(nil)
	_ iterable.Assigner = (*Dict)(nil)
)

// Pair is a single (key, value) entry. It is a two element array so that a
// slice of pairs can seed a new Dict.
type Pair [2]any

// Key returns the entry key.
func (p Pair) Key() string {
	return iterable.KeyOf(p[0])
}

// Value returns the entry value.
func (p Pair) Value() any {
	return p[1]
}

// Dict maps string keys to arbitrary values and remembers insertion order.
// Overwriting a key keeps its position; deleting and re-adding moves it to
// the end. The zero value is an empty Dict ready to use, with the settings
// of DefaultConfig.
type Dict struct {
	entries *orderedmap.OrderedMap[string, any]
	config  Config
}

// New returns an empty Dict.
func New(opts ...Option) *Dict {
	return &Dict{
		entries: orderedmap.New[string, any](),
		config:  newConfig(opts),
	}
}

// From returns a Dict seeded from source, which may be a keyed container
// (map, struct, Dict, ordered map) or a sequence of pairs. A nil source
// yields an empty Dict.
func From(source any, opts ...Option) (*Dict, error) {
	d := New(opts...)
	if err := d.Update(source); err != nil {
		return nil, err
	}
	return d, nil
}

// MustFrom is like From but panics on error.
func MustFrom(source any, opts ...Option) *Dict {
	d, err := From(source, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// FromKeys returns a Dict whose keys are the elements produced by iterating
// keys (slice elements, string characters or own key names), each mapped to
// the same value.
func FromKeys(keys any, value any, opts ...Option) (*Dict, error) {
	d := New(opts...)
	it, err := iterable.Iterate(keys, d.config.iteratorOptions()...)
	if err != nil {
		return nil, err
	}
	for r := it.Next(); !r.Done; r = it.Next() {
		d.Set(iterable.KeyOf(r.Value), value)
	}
	return d, nil
}

func (d *Dict) init() {
	if d.entries == nil {
		d.entries = orderedmap.New[string, any]()
	}
	if d.config.Logger == nil {
		d.config = DefaultConfig()
	}
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d.entries == nil {
		return 0
	}
	return d.entries.Len()
}

// Lookup returns the value stored under key and whether it exists.
func (d *Dict) Lookup(key string) (any, bool) {
	if d.entries == nil {
		return nil, false
	}
	return d.entries.Get(key)
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Get returns the value stored under key. For a missing key it returns the
// first default, or nil when none is given. A stored nil is still returned
// as nil even if a default is passed.
func (d *Dict) Get(key string, def ...any) any {
	if v, ok := d.Lookup(key); ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Set stores value under key.
func (d *Dict) Set(key string, value any) {
	d.init()
	d.entries.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	if d.entries == nil {
		return false
	}
	_, ok := d.entries.Delete(key)
	return ok
}

// Keys returns the keys in order.
func (d *Dict) Keys() []string {
	out := make([]string, 0, d.Len())
	for k := range d.All() {
		out = append(out, k)
	}
	return out
}

// Values returns the values in key order.
func (d *Dict) Values() []any {
	out := make([]any, 0, d.Len())
	for _, v := range d.All() {
		out = append(out, v)
	}
	return out
}

// Items returns the entries in order.
func (d *Dict) Items() []Pair {
	out := make([]Pair, 0, d.Len())
	for k, v := range d.All() {
		out = append(out, Pair{k, v})
	}
	return out
}

// All iterates over the entries in order. Deleting the entry currently being
// visited is allowed.
func (d *Dict) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if d.entries == nil {
			return
		}
		for pair := d.entries.Oldest(); pair != nil; {
			next := pair.Next()
			if !yield(pair.Key, pair.Value) {
				return
			}
			pair = next
		}
	}
}

// Pop removes key and returns its value. For a missing key it returns the
// first default, or an ErrKey error when no default is given.
func (d *Dict) Pop(key string, def ...any) (any, error) {
	if d.entries != nil {
		if v, ok := d.entries.Delete(key); ok {
			return v, nil
		}
	}
	if len(def) > 0 {
		return def[0], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrKey, key)
}

// PopItem removes and returns the oldest entry.
func (d *Dict) PopItem() (Pair, error) {
	d.init()
	oldest := d.entries.Oldest()
	if oldest == nil {
		d.config.Logger.Debug("popitem on empty dictionary")
		return Pair{}, fmt.Errorf("%w: popitem(): dictionary is empty", ErrKey)
	}
	p := Pair{oldest.Key, oldest.Value}
	d.entries.Delete(oldest.Key)
	return p, nil
}

// SetDefault returns the value stored under key, storing def first if the
// key is missing.
func (d *Dict) SetDefault(key string, def any) any {
	if v, ok := d.Lookup(key); ok {
		return v
	}
	d.Set(key, def)
	return def
}

// Update merges source into d. Keyed containers contribute their own entries;
// sequences must hold pairs. See iterable.Merge for the exact rules.
func (d *Dict) Update(source any) error {
	d.init()
	return iterable.Merge(d, source, d.config.mergeOptions()...)
}

// Copy returns a shallow copy with the same order and options.
func (d *Dict) Copy() *Dict {
	d.init()
	c := &Dict{
		entries: orderedmap.New[string, any](),
		config:  d.config,
	}
	for k, v := range d.All() {
		c.entries.Set(k, v)
	}
	return c
}

// FromKeys is FromKeys with the options of d.
func (d *Dict) FromKeys(keys any, value any) (*Dict, error) {
	d.init()
	return FromKeys(keys, value, WithLogger(d.config.Logger), WithReusedResults(d.config.ReuseResults))
}

// Clear removes every entry.
func (d *Dict) Clear() {
	d.entries = orderedmap.New[string, any]()
}

// Len returns the length of an array-like value or the number of own keys of
// a keyed container.
func Len(v any) (int, error) {
	return iterable.Size(v)
}
