package sortedset

import (
	"slices"
)

// bucket is an ascending, duplicate-free run of values. A bucket is owned by
// exactly one set.
type bucket struct {
	data []Value
}

func newBucket(capacity int) *bucket {
	return &bucket{data: make([]Value, 0, capacity)}
}

func (b *bucket) len() int {
	return len(b.data)
}

// search looks for v and returns its position, or the position where it would
// have to be inserted.
func (b *bucket) search(v Value) (int, bool) {
	return slices.BinarySearchFunc(b.data, v, Compare)
}

// add inserts v at its ordered position and returns that position. If an equal
// value is present, add returns a *DuplicateError carrying the local index.
func (b *bucket) add(v Value) (int, error) {
	i, found := b.search(v)
	if found {
		return 0, &DuplicateError{Index: i}
	}
	b.data = slices.Insert(b.data, i, v)
	return i, nil
}

// removeAt deletes the value at local index i.
func (b *bucket) removeAt(i int) {
	b.data = slices.Delete(b.data, i, i+1)
}

// split divides the bucket at its midpoint. The receiver keeps the first
// len/2 values, the returned bucket holds the remaining len-len/2 values.
func (b *bucket) split() *bucket {
	at := len(b.data) / 2
	other := &bucket{data: make([]Value, len(b.data)-at, cap(b.data))}
	copy(other.data, b.data[at:])
	clear(b.data[at:])
	b.data = b.data[:at]
	return other
}

// rangeTest tests v against the bucket's boundaries. It returns
//
//	+1  if v is less than the first value (the bucket is right of v)
//	-1  if v is greater than the last value (the bucket is left of v)
//	 0  if v may be contained, including when the bucket is empty
//
// The sign convention makes rangeTest usable as a binary search comparator
// over a sequence of buckets.
func (b *bucket) rangeTest(v Value) int {
	if len(b.data) == 0 {
		return 0
	}
	if Compare(v, b.data[0]) < 0 {
		return 1
	}
	if Compare(b.data[len(b.data)-1], v) < 0 {
		return -1
	}
	return 0
}

func (b *bucket) first() Value {
	if len(b.data) == 0 {
		return nil
	}
	return b.data[0]
}

func (b *bucket) last() Value {
	if len(b.data) == 0 {
		return nil
	}
	return b.data[len(b.data)-1]
}
