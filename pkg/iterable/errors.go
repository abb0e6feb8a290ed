package iterable

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers can dispatch with errors.Is and still read the full message.
var (
	// ErrType is returned when a value that must be iterated is not iterable.
	ErrType = errors.New("type error")
	// ErrValue is returned when a pair-like element does not hold exactly two entries.
	ErrValue = errors.New("value error")
	// ErrRange is returned when a keyed array-like value reports more positions
	// than MaxArrayLength.
	ErrRange = errors.New("range error")
)
