/*
Package term reads and writes set values in literal syntax.

The syntax mirrors the output of sortedset.Value.String:

	42  -7                 integers
	ok  'Hello world'      atoms, quoted unless a lowercase identifier
	{ok,1}                 tuples
	[1,[2,3],"x"]          lists
	"bytes\x00"            bitstrings, using Go escapes

Whitespace between tokens is insignificant. Parse and Format round-trip for
every value a set may hold.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package term

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sortedset'
func tracer() tracing.Trace {
	return tracing.Select("sortedset")
}
