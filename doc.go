/*
Package sortedset implements a duplicate-free ordered index over a small,
closed set of tagged value kinds.

The index is optimized for frequent single-item inserts and removals mixed with
positional range reads. Values are kept in a sequence of buckets. Each bucket is
an ascending run of values, and buckets do not overlap: every value of bucket i
is strictly less than every value of bucket i+1.

	Operation     |   Cost
	--------------+-------------------------------------------
	Add           |   O(log #buckets + bucket size)
	Remove        |   O(log #buckets + bucket size)
	FindIndex     |   O(log #buckets + log bucket size)
	At, Slice     |   O(#buckets touched)
	Size          |   O(1)

A single-item operation routes to exactly one candidate bucket by binary search
over the bucket boundaries, then delegates the exact lookup to that bucket.
Buckets which reach the configured maximum size are split at their midpoint.
Buckets which become empty through removal are dropped, unless they are the
last remaining bucket. There is no merging of under-full buckets.

# Values

Values belong to one of five kinds with a fixed total order:

	Integer < Atom < Tuple < List < Bitstring

Tuples of different length are ordered by length alone; lists are ordered
lexicographically. See Compare for details.

# Concurrency

A Set is a single-threaded data structure without internal locking. Clients
sharing a set between goroutines have to serialize all operations on it, e.g.
by using package bridge, which guards every set with an exclusive lock.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.
*/
package sortedset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sortedset'
func tracer() tracing.Trace {
	return tracing.Select("sortedset")
}

// assert panics with a CorruptionError if condition is false. It is reserved for
// broken structural invariants, never for ordinary outcomes.
func assert(condition bool, msg string) {
	if !condition {
		tracer().Errorf("sortedset: %s", msg)
		panic(&CorruptionError{Msg: msg})
	}
}
