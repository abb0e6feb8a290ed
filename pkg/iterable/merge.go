package iterable

import (
	"fmt"
	"unicode/utf8"

	"github.com/zeusync/pydict/pkg/log"
)

// Assigner is the target of a merge.
type Assigner interface {
	Set(key string, value any)
}

// MergeOption configures Merge.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	logger log.Log
	reuse  bool
}

// WithMergeLogger routes merge diagnostics to l.
func WithMergeLogger(l log.Log) MergeOption {
	return func(c *mergeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReusedResults toggles the allocation free iterator path used while
// extracting pairs. It is on by default.
func WithReusedResults(enabled bool) MergeOption {
	return func(c *mergeConfig) { c.reuse = enabled }
}

// Merge copies the entries described by source into target.
//
// A keyed container contributes its own entries in enumeration order. An
// array-like source must hold pair-like elements: a two element sequence is
// read as (key, value), while a keyed container with exactly two own keys
// contributes those key names, ordered by descending code point of their
// first character. A nil source is a no-op.
func Merge(target Assigner, source any, opts ...MergeOption) error {
	cfg := mergeConfig{logger: log.Nop(), reuse: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	src := shapeOf(source)
	if src.kind == kindAbsent {
		return nil
	}
	if !src.iterable() {
		return notIterable(source)
	}

	if !src.arrayLike() {
		keys := src.keys()
		for _, key := range keys {
			value, _ := src.lookup(key)
			target.Set(key, value)
		}
		cfg.logger.Debug("merged keyed container",
			log.String("type", TypeOf(source)),
			log.Int("entries", len(keys)),
		)
		return nil
	}

	elements, err := src.elements()
	if err != nil {
		return err
	}
	for i := 0; i < elements.len(); i++ {
		key, value, err := cfg.pair(i, elements.at(i))
		if err != nil {
			return err
		}
		target.Set(key, value)
	}
	if elements.len() > 0 {
		cfg.logger.Debug("merged pair sequence", log.Int("entries", elements.len()))
	}
	return nil
}

func (c *mergeConfig) pair(index int, element any) (string, any, error) {
	es := shapeOf(element)
	if !es.iterable() {
		return "", nil, fmt.Errorf("%w: cannot convert dictionary sequence element #%d to a sequence", ErrType, index)
	}

	var opts []IteratorOption
	if c.reuse {
		opts = append(opts, WithReusedResult())
	}
	it, err := Iterate(element, opts...)
	if err != nil {
		return "", nil, err
	}
	if it.Len() != 2 {
		return "", nil, fmt.Errorf("%w: dictionary update sequence element #%d has length %d; 2 is required", ErrValue, index, it.Len())
	}

	key := it.Next().Value
	value := it.Next().Value

	if !es.arrayLike() {
		a, b := key.(string), value.(string)
		if firstRuneAfter(b, a) {
			a, b = b, a
		}
		key, value = a, b
		c.logger.Debug("ordered two-key element by first character",
			log.Int("index", index),
			log.String("key", a),
			log.String("value", b),
		)
	}

	return KeyOf(key), value, nil
}

// firstRuneAfter reports whether a's first character sorts after b's. Empty
// strings never compare as greater.
func firstRuneAfter(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ra, _ := utf8.DecodeRuneInString(a)
	rb, _ := utf8.DecodeRuneInString(b)
	return ra > rb
}
