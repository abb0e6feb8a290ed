package iterable

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type kind uint8

const (
	kindAbsent kind = iota
	kindBool
	kindNumber
	kindString
	kindSequence
	kindList
	kindMapping
	kindOrdered
	kindMap
	kindStruct
	kindFunc
	kindOpaque
)

// shape is the classified view of a single value. It is computed on demand
// and never cached.
type shape struct {
	kind    kind
	str     string
	seq     Sequence
	mapping Mapping
	ordered *orderedmap.OrderedMap[string, any]
	rv      reflect.Value
}

func shapeOf(v any) shape {
	if v == nil {
		return shape{kind: kindAbsent}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Func {
		if rv.IsNil() {
			return shape{kind: kindAbsent}
		}
	}

	switch t := v.(type) {
	case string:
		return shape{kind: kindString, str: t}
	case *orderedmap.OrderedMap[string, any]:
		return shape{kind: kindOrdered, ordered: t}
	case Sequence:
		return shape{kind: kindSequence, seq: t}
	case Mapping:
		return shape{kind: kindMapping, mapping: t}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return shape{kind: kindBool}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return shape{kind: kindNumber}
	case reflect.String:
		return shape{kind: kindString, str: rv.String()}
	case reflect.Slice, reflect.Array:
		return shape{kind: kindList, rv: rv}
	case reflect.Map:
		return shape{kind: kindMap, rv: rv}
	case reflect.Struct:
		return shape{kind: kindStruct, rv: rv}
	case reflect.Pointer:
		return shapeOf(rv.Elem().Interface())
	case reflect.Func:
		return shape{kind: kindFunc}
	default:
		return shape{kind: kindOpaque}
	}
}

func (s shape) primitive() bool {
	return s.kind == kindAbsent || s.kind == kindBool || s.kind == kindNumber
}

// length returns the raw length attribute, if the value has one.
func (s shape) length() (any, bool) {
	switch s.kind {
	case kindString:
		return utf8.RuneCountInString(s.str), true
	case kindSequence:
		return s.seq.Len(), true
	case kindList:
		return s.rv.Len(), true
	case kindMapping, kindOrdered, kindMap:
		return s.lookup("length")
	default:
		return nil, false
	}
}

// size returns the validated length of an array-like value.
func (s shape) size() (int, bool) {
	n, ok := s.length()
	if !ok || !IsLength(n) {
		return 0, false
	}
	f, _ := toFloat(n)
	return int(f), true
}

func (s shape) arrayLike() bool {
	if s.kind == kindAbsent {
		return false
	}
	_, ok := s.size()
	return ok
}

func (s shape) iterable() bool {
	if s.primitive() {
		return false
	}
	n, ok := s.length()
	return !ok || IsLength(n)
}

// snapshot is a positional copy of an array-like value. Keyed array-likes
// are copied sparsely: only the indices they own are stored and the rest
// read as nil.
type snapshot struct {
	dense  []any
	sparse map[int]any
	n      int
}

func (s snapshot) len() int {
	return s.n
}

func (s snapshot) at(i int) any {
	if i < len(s.dense) {
		return s.dense[i]
	}
	return s.sparse[i]
}

// elements snapshots the positional elements of an array-like value.
func (s shape) elements() (snapshot, error) {
	n, ok := s.size()
	if !ok {
		return snapshot{}, nil
	}

	switch s.kind {
	case kindString:
		out := make([]any, 0, n)
		for _, r := range s.str {
			out = append(out, string(r))
		}
		return snapshot{dense: out, n: n}, nil
	case kindSequence:
		out := make([]any, n)
		for i := range out {
			out[i] = s.seq.At(i)
		}
		return snapshot{dense: out, n: n}, nil
	case kindList:
		out := make([]any, n)
		for i := range out {
			out[i] = s.rv.Index(i).Interface()
		}
		return snapshot{dense: out, n: n}, nil
	}

	if uint64(n) > MaxArrayLength {
		return snapshot{}, fmt.Errorf("%w: invalid array length %d", ErrRange, n)
	}
	sparse := make(map[int]any)
	for _, key := range s.keys() {
		i, ok := arrayIndex(key)
		if !ok || i >= uint64(n) {
			continue
		}
		sparse[int(i)], _ = s.lookup(key)
	}
	return snapshot{sparse: sparse, n: n}, nil
}

// at reads a single positional element of a string, sequence or list.
func (s shape) at(i int) (any, bool) {
	n, ok := s.size()
	if !ok || i >= n {
		return nil, false
	}
	switch s.kind {
	case kindString:
		return string([]rune(s.str)[i]), true
	case kindSequence:
		return s.seq.At(i), true
	case kindList:
		return s.rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

// keys returns the own enumerable keys in enumeration order.
func (s shape) keys() []string {
	switch s.kind {
	case kindString, kindSequence, kindList:
		n, _ := s.size()
		out := make([]string, n)
		for i := range out {
			out[i] = strconv.Itoa(i)
		}
		return out
	case kindMapping:
		return slices.Clone(s.mapping.Keys())
	case kindOrdered:
		out := make([]string, 0, s.ordered.Len())
		for pair := s.ordered.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, pair.Key)
		}
		return out
	case kindMap:
		out := make([]string, 0, s.rv.Len())
		iter := s.rv.MapRange()
		for iter.Next() {
			out = append(out, KeyOf(iter.Key().Interface()))
		}
		sortObjectKeys(out)
		return slices.Compact(out)
	case kindStruct:
		t := s.rv.Type()
		out := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				out = append(out, t.Field(i).Name)
			}
		}
		return out
	default:
		return nil
	}
}

// lookup reads an own entry by key.
func (s shape) lookup(key string) (any, bool) {
	switch s.kind {
	case kindMapping:
		return s.mapping.Lookup(key)
	case kindOrdered:
		return s.ordered.Get(key)
	case kindMap:
		return s.lookupMap(key)
	case kindStruct:
		f, ok := s.rv.Type().FieldByName(key)
		if !ok || !f.IsExported() || len(f.Index) != 1 {
			return nil, false
		}
		return s.rv.FieldByIndex(f.Index).Interface(), true
	case kindString, kindSequence, kindList:
		i, ok := arrayIndex(key)
		if !ok {
			return nil, false
		}
		return s.at(int(i))
	default:
		return nil, false
	}
}

// lookupMap finds the entry whose key converts to key. When several keys
// convert to the same string, a key that already is that string wins, then
// the key whose type name sorts first.
func (s shape) lookupMap(key string) (any, bool) {
	keyType := s.rv.Type().Key()
	kv := reflect.ValueOf(key)
	if keyType.Kind() == reflect.String {
		kv = kv.Convert(keyType)
	}
	if kv.Type().AssignableTo(keyType) {
		if v := s.rv.MapIndex(kv); v.IsValid() {
			return v.Interface(), true
		}
		if keyType.Kind() == reflect.String {
			return nil, false
		}
	}

	var (
		found     reflect.Value
		foundType string
	)
	iter := s.rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		if KeyOf(k) != key {
			continue
		}
		if name := fmt.Sprintf("%T", k); !found.IsValid() || name < foundType {
			found, foundType = iter.Value(), name
		}
	}
	if !found.IsValid() {
		return nil, false
	}
	return found.Interface(), true
}

// sortObjectKeys orders keys the way own object keys enumerate: canonical
// array indices ascending, then the rest lexicographically.
func sortObjectKeys(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		ai, aIndex := arrayIndex(a)
		bi, bIndex := arrayIndex(b)
		switch {
		case aIndex && bIndex:
			return cmp.Compare(ai, bi)
		case aIndex:
			return -1
		case bIndex:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
}

func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}

// KeyOf converts a value into a dictionary key. nil becomes "null", values
// cast cannot convert fall back to their default formatting.
func KeyOf(v any) string {
	if v == nil {
		return "null"
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func notIterable(v any) error {
	return fmt.Errorf("%w: %s is not iterable", ErrType, TypeOf(v))
}
