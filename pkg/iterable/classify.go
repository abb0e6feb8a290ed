// Package iterable classifies arbitrary Go values the way a loosely typed
// runtime would (array-like, keyed container, primitive) and coerces them into
// restartable snapshot iterators. It also hosts the pair-merge algorithm used
// to seed and update dictionaries from heterogeneous sources.
package iterable

import (
	"math"
)

// MaxSafeInteger is the largest length an array-like value may report.
const MaxSafeInteger = 1<<53 - 1

// MaxArrayLength is the largest number of positions a keyed container with a
// "length" entry may be iterated over. Larger valid lengths are reported by
// Size but cannot be snapshotted.
const MaxArrayLength = 1<<32 - 1

// Sequence is implemented by custom array-like values.
type Sequence interface {
	Len() int
	At(i int) any
}

// Mapping is implemented by custom keyed containers. Keys must return the own
// keys in enumeration order.
type Mapping interface {
	Keys() []string
	Lookup(key string) (any, bool)
}

// Type tags returned by TypeOf.
const (
	TagArray    = "[object Array]"
	TagBoolean  = "[object Boolean]"
	TagFunction = "[object Function]"
	TagNull     = "[object Null]"
	TagNumber   = "[object Number]"
	TagObject   = "[object Object]"
	TagString   = "[object String]"
)

// IsLength reports whether v is a number usable as the length of an
// array-like value: non-negative, integral and at most MaxSafeInteger.
func IsLength(v any) bool {
	n, ok := toFloat(v)
	if !ok {
		return false
	}
	return n > -1 && n == math.Trunc(n) && n <= MaxSafeInteger
}

// IsArrayLike reports whether v is present and carries a valid length.
func IsArrayLike(v any) bool {
	return shapeOf(v).arrayLike()
}

// IsIterable reports whether v can be iterated: it must not be absent, a
// number or a boolean, and if it carries a length that length must be valid.
// Keyed containers without a length are iterable over their own keys.
func IsIterable(v any) bool {
	return shapeOf(v).iterable()
}

// TypeOf returns the diagnostic type tag of v.
func TypeOf(v any) string {
	s := shapeOf(v)
	switch s.kind {
	case kindAbsent:
		return TagNull
	case kindBool:
		return TagBoolean
	case kindNumber:
		return TagNumber
	case kindString:
		return TagString
	case kindSequence, kindList:
		return TagArray
	case kindFunc:
		return TagFunction
	default:
		return TagObject
	}
}

// Size returns the element count of an array-like value or the number of own
// keys of a keyed container.
func Size(v any) (int, error) {
	s := shapeOf(v)
	if !s.iterable() {
		return 0, notIterable(v)
	}
	if n, ok := s.size(); ok {
		return n, nil
	}
	return len(s.keys()), nil
}
