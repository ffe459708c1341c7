package sortedset

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// setDump mirrors the internal structure of a set for Debug.
type setDump struct {
	Configuration Configuration
	Size          int
	Buckets       [][]string
}

// Debug returns a human-readable dump of the internal structure of the set,
// including configuration, cached size and bucket layout.
func (s *Set) Debug() string {
	if s == nil {
		return "<nil set>"
	}
	d := setDump{
		Configuration: s.cfg,
		Size:          s.size,
		Buckets:       make([][]string, len(s.buckets)),
	}
	for i, b := range s.buckets {
		d.Buckets[i] = make([]string, len(b.data))
		for j, v := range b.data {
			d.Buckets[i][j] = v.String()
		}
	}
	return dumper.Sdump(d)
}

// String returns the values of the set in literal syntax, e.g. "#{1,2,3}".
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteString("#{")
	s.ForEach(func(i int, v Value) bool {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

// GoString supports %#v, printing the bucket layout.
func (s *Set) GoString() string {
	if s == nil {
		return "(*sortedset.Set)(nil)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "sortedset.Set{size: %d, buckets: [", s.size)
	for i, b := range s.buckets {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(joinValues(b.data))
	}
	sb.WriteString("]}")
	return sb.String()
}
