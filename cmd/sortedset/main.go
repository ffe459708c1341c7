/*
Sortedset is an interactive shell for bucketed sorted sets.

Usage:

	sortedset [--max-bucket-size N] [--capacity N] [--config FILE.nt] [--trace LEVEL]

Commands are read one per line from standard input. Values are written in
literal syntax, for example

	sortedset> add {ok,[1,2],"bin"}
	{ok,added,0}

Type 'help' for a list of commands.

A configuration file uses NestedText:

	sortedset:
	    max_bucket_size: 64
	    initial_item_capacity: 1000
	trace:
	    sortedset: Debug

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
