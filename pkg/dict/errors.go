package dict

import (
	"errors"

	"github.com/zeusync/pydict/pkg/iterable"
)

// Error kinds returned by dictionary operations. Match them with errors.Is.
var (
	ErrType  = iterable.ErrType
	ErrValue = iterable.ErrValue
	ErrRange = iterable.ErrRange
	ErrKey   = errors.New("key error")
)
