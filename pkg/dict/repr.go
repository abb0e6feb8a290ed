package dict

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/pydict/pkg/iterable"
)

var _ fmt.Stringer = (*Dict)(nil)

// String renders d the way Python prints a dict: {'a': 1, 'b': None}. A Dict
// nested inside itself prints as {...}.
func (d *Dict) String() string {
	var w reprWriter
	w.dict(d)
	return w.sb.String()
}

// Digest returns an order sensitive 64-bit hash of the entries. Copies hash
// equal; any insertion, deletion, reordering or value change is expected to
// change it.
func (d *Dict) Digest() uint64 {
	h := xxhash.New()
	w := reprWriter{active: map[*Dict]struct{}{d: {}}}
	for k, v := range d.All() {
		w.sb.Reset()
		w.value(k)
		w.sb.WriteString(": ")
		w.value(v)
		w.sb.WriteByte(0)
		_, _ = h.WriteString(w.sb.String())
	}
	return h.Sum64()
}

// reprWriter renders values in Python repr form. active holds the dicts
// currently being rendered.
type reprWriter struct {
	sb     strings.Builder
	active map[*Dict]struct{}
}

func (w *reprWriter) dict(d *Dict) {
	if _, ok := w.active[d]; ok {
		w.sb.WriteString("{...}")
		return
	}
	if w.active == nil {
		w.active = make(map[*Dict]struct{})
	}
	w.active[d] = struct{}{}
	defer delete(w.active, d)

	w.sb.WriteByte('{')
	first := true
	for k, v := range d.All() {
		if !first {
			w.sb.WriteString(", ")
		}
		first = false
		w.value(k)
		w.sb.WriteString(": ")
		w.value(v)
	}
	w.sb.WriteByte('}')
}

func (w *reprWriter) value(v any) {
	switch t := v.(type) {
	case nil:
		w.sb.WriteString("None")
	case *Dict:
		if t == nil {
			w.sb.WriteString("None")
			return
		}
		w.dict(t)
	case Pair:
		w.sb.WriteByte('(')
		w.value(t[0])
		w.sb.WriteString(", ")
		w.value(t[1])
		w.sb.WriteByte(')')
	case string:
		writeString(&w.sb, t)
	case bool:
		if t {
			w.sb.WriteString("True")
		} else {
			w.sb.WriteString("False")
		}
	case float64:
		w.sb.WriteString(formatFloat(t, 64))
	case float32:
		w.sb.WriteString(formatFloat(float64(t), 32))
	case fmt.Stringer:
		w.sb.WriteString(t.String())
	default:
		w.composite(v)
	}
}

func (w *reprWriter) composite(v any) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			fmt.Fprintf(&w.sb, "b%q", rv.Bytes())
			return
		}
		w.sb.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			w.value(rv.Index(i).Interface())
		}
		w.sb.WriteByte(']')
	case reflect.Map:
		entries := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries[iterable.KeyOf(iter.Key().Interface())] = iter.Value().Interface()
		}
		w.sb.WriteByte('{')
		for i, k := range slices.Sorted(maps.Keys(entries)) {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			w.value(k)
			w.sb.WriteString(": ")
			w.value(entries[k])
		}
		w.sb.WriteByte('}')
	case reflect.Pointer:
		if rv.IsNil() {
			w.sb.WriteString("None")
			return
		}
		w.value(rv.Elem().Interface())
	default:
		fmt.Fprint(&w.sb, v)
	}
}

// formatFloat prints f like Python's float repr: the shortest round-tripping
// digits, a trailing ".0" on integral values, exponent form below 1e-4 or
// from 1e16 up, and nan/inf spelled in lower case.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	e := strconv.FormatFloat(f, 'e', -1, bitSize)
	if exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// writeString quotes s with single quotes unless it contains one and no
// double quote, matching Python's repr.
func writeString(sb *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	sb.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case !strconv.IsPrint(r) && r <= 0xff:
			fmt.Fprintf(sb, `\x%02x`, r)
		case !strconv.IsPrint(r):
			fmt.Fprintf(sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
}
