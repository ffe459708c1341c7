package sortedset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig signals an invalid set configuration.
	ErrInvalidConfig = errors.New("sortedset: invalid configuration")
	// ErrDuplicate signals that a value is already present. Errors returned from
	// Add are of type *DuplicateError and carry the value's effective index.
	ErrDuplicate = errors.New("sortedset: duplicate")
	// ErrNotFound signals that a value is not present in the set.
	ErrNotFound = errors.New("sortedset: not found")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("sortedset: index out of bounds")
	// ErrMaxBucketSizeExceeded signals that a bulk-loaded bucket is too large.
	ErrMaxBucketSizeExceeded = errors.New("sortedset: max bucket size exceeded")
	// ErrUnsupportedValue signals a value outside of the five supported kinds.
	ErrUnsupportedValue = errors.New("sortedset: unsupported value")
	// ErrNoBuckets is the panic value for operations which need at least one
	// bucket, called on a set created by Empty before any bucket was appended.
	ErrNoBuckets = errors.New("sortedset: set has no buckets")
	// ErrCorrupted is reported by Check for broken structural invariants.
	ErrCorrupted = errors.New("sortedset: structure corrupted")
)

// DuplicateError is returned by Add if the value is already present.
type DuplicateError struct {
	Index int // effective index of the present value
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("sortedset: duplicate at index %d", e.Index)
}

// Is makes errors.Is(err, ErrDuplicate) hold for every *DuplicateError.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// DuplicateIndex extracts the index carried by a duplicate outcome.
func DuplicateIndex(err error) (int, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Index, true
	}
	return 0, false
}

// CorruptionError is the panic value for internal-consistency violations.
//
// It is never returned as an error. A set which raised a CorruptionError must
// not be used any further.
type CorruptionError struct {
	Msg string
}

func (e *CorruptionError) Error() string {
	return "sortedset: internal structure error: " + e.Msg
}
