/*
Package bridge exposes sorted sets to a dynamically typed host.

Sets live in a Registry and are addressed by opaque handles. Every operation
receives host values as plain Go values (see FromGo), and answers with a reply
term, which is itself a sortedset.Value:

	ok                              bucket appended
	{ok, added, I}                  value inserted at effective index I
	{ok, duplicate, I}              value already present at I
	{ok, removed, I}                value removed from I
	{ok, X}                         handle, index or value X
	{error, Reason}                 not_found, index_out_of_bounds,
	                                max_bucket_size_exceeded, unsupported_type,
	                                bad_reference, lock_fail, invalid_configuration

Size, ToList and Slice reply with a bare integer or list.

Operations never wait for a set which is busy. If the set is locked by a
concurrent operation, the reply is {error, lock_fail} and the caller decides
whether to retry.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package bridge

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sortedset'
func tracer() tracing.Trace {
	return tracing.Select("sortedset")
}
