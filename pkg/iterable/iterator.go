package iterable

import "iter"

// Result is a single step of an Iterator.
type Result struct {
	Value any
	Done  bool
	Index int
}

// Iterator walks a snapshot taken when it was created: the positional
// elements of an array-like value, or the own keys of a keyed container.
// Later changes to the source are never observed.
type Iterator struct {
	items  snapshot
	pos    int
	reuse  bool
	result Result
}

// IteratorOption configures an Iterator.
type IteratorOption func(*Iterator)

// WithReusedResult makes Next mutate and return the same *Result on every
// call instead of allocating a new one. The record belongs to this iterator
// only; callers must copy what they need before the next call.
func WithReusedResult() IteratorOption {
	return func(it *Iterator) { it.reuse = true }
}

// Iterate snapshots v and returns an iterator positioned at its start.
func Iterate(v any, opts ...IteratorOption) (*Iterator, error) {
	s := shapeOf(v)
	if !s.iterable() {
		return nil, notIterable(v)
	}

	var items snapshot
	if s.arrayLike() {
		var err error
		if items, err = s.elements(); err != nil {
			return nil, err
		}
	} else {
		keys := s.keys()
		dense := make([]any, len(keys))
		for i, key := range keys {
			dense[i] = key
		}
		items = snapshot{dense: dense, n: len(dense)}
	}

	it := &Iterator{items: items}
	for _, opt := range opts {
		opt(it)
	}
	return it, nil
}

// Next returns the element at the cursor and advances it. Once the snapshot
// is exhausted every call reports Done with a nil Value.
func (it *Iterator) Next() *Result {
	r := &Result{}
	if it.reuse {
		r = &it.result
	}

	r.Index = it.pos
	r.Done = it.pos >= it.items.len()
	if r.Done {
		r.Value = nil
	} else {
		r.Value = it.items.at(it.pos)
	}
	it.pos++

	return r
}

// Restart rewinds the cursor. The snapshot is kept as is.
func (it *Iterator) Restart() {
	it.pos = 0
}

// Len is the snapshot size, fixed at creation.
func (it *Iterator) Len() int {
	return it.items.len()
}

// All yields the remaining elements with their positions, advancing the
// cursor as it goes.
func (it *Iterator) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for {
			r := it.Next()
			if r.Done {
				return
			}
			if !yield(r.Index, r.Value) {
				return
			}
		}
	}
}
