/*
Package textfile loads sorted sets from text files and saves them back.

A set file holds one value per line in literal syntax (see package term), in
strictly ascending order. Blank lines and lines starting with '#' are ignored.
This is the format Save writes.

Loading reads the file in a goroutine of its own and broadcasts fragments of
consecutive values to the set builder and to optional observers. Every fragment
becomes one bucket of the resulting set, which is bulk-loaded without
re-sorting.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sortedset'
func tracer() tracing.Trace {
	return tracing.Select("sortedset")
}
